package isoband

// term is one point contributed by a boundary edge.
type term uint8

const (
	termStart term = iota // the edge's first corner
	termEnd               // the edge's second corner
	termLow               // crossing of the low level
	termHigh              // crossing of the high level
)

// edgeRules[class(pi)][class(pe)] lists the points an edge contributes to
// the boundary of the band, in traversal order.
var edgeRules = [3][3][]term{
	Below: {
		Below:  nil,
		Within: {termLow, termEnd},
		Above:  {termLow, termHigh},
	},
	Within: {
		Below:  {termStart, termLow},
		Within: {termStart, termEnd},
		Above:  {termStart, termHigh},
	},
	Above: {
		Below:  {termHigh, termLow},
		Within: {termHigh, termEnd},
		Above:  nil,
	},
}

type assembly uint8

const (
	regular assembly = iota
	uniform
	saddle
)

// lobes splits the boundary sequence of a saddle into two rings.
type lobes [2][]int

type caseRule struct {
	assembly assembly
	below    lobes // centre value below the band
	above    lobes // centre value above the band
}

// saddleCases holds the split used for each ambiguous configuration when
// the centre of the cell is outside the band. Indices address the boundary
// sequence built from the edges, where a shared corner appears once.
var saddleCases = map[string]caseRule{
	// 6-sided
	"0101": {saddle, lobes{{0, 1, 2}, {3, 4, 5}}, lobes{{0, 1, 2}, {3, 4, 5}}},
	"2121": {saddle, lobes{{0, 1, 2}, {3, 4, 5}}, lobes{{0, 1, 2}, {3, 4, 5}}},
	"1010": {saddle, lobes{{0, 1, 5}, {2, 3, 4}}, lobes{{0, 1, 5}, {2, 3, 4}}},
	"1212": {saddle, lobes{{0, 1, 5}, {2, 3, 4}}, lobes{{0, 1, 5}, {2, 3, 4}}},

	// 7-sided
	"2120": {saddle, lobes{{0, 1, 2}, {3, 4, 5, 6}}, lobes{{0, 1, 2}, {3, 4, 5, 6}}},
	"0102": {saddle, lobes{{0, 1, 2}, {3, 4, 5, 6}}, lobes{{0, 1, 2}, {3, 4, 5, 6}}},
	"2021": {saddle, lobes{{0, 1, 2, 3}, {4, 5, 6}}, lobes{{0, 1, 2, 3}, {4, 5, 6}}},
	"0201": {saddle, lobes{{0, 1, 2, 3}, {4, 5, 6}}, lobes{{0, 1, 2, 3}, {4, 5, 6}}},
	"1202": {saddle, lobes{{0, 1, 6}, {2, 3, 4, 5}}, lobes{{0, 1, 6}, {2, 3, 4, 5}}},
	"1020": {saddle, lobes{{0, 1, 6}, {2, 3, 4, 5}}, lobes{{0, 1, 6}, {2, 3, 4, 5}}},
	"0212": {saddle, lobes{{0, 1, 5, 6}, {2, 3, 4}}, lobes{{0, 1, 5, 6}, {2, 3, 4}}},
	"2010": {saddle, lobes{{0, 1, 5, 6}, {2, 3, 4}}, lobes{{0, 1, 5, 6}, {2, 3, 4}}},

	// 8-sided
	"2020": {saddle, lobes{{0, 1, 6, 7}, {2, 3, 4, 5}}, lobes{{0, 1, 2, 3}, {4, 5, 6, 7}}},
	"0202": {saddle, lobes{{0, 1, 2, 3}, {4, 5, 6, 7}}, lobes{{0, 1, 6, 7}, {2, 3, 4, 5}}},
}

// caseTable is indexed by Classification.Index.
var caseTable = buildCaseTable()

func buildCaseTable() [81]caseRule {
	var table [81]caseRule
	for _, key := range []string{"0000", "2222"} {
		table[mustParse(key).Index()] = caseRule{assembly: uniform}
	}
	for key, rule := range saddleCases {
		table[mustParse(key).Index()] = rule
	}
	return table
}

func mustParse(key string) Classification {
	c, err := ParseClassification(key)
	if err != nil {
		panic(err)
	}
	return c
}
