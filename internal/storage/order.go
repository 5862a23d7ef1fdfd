package storage

import "strings"

// NameOrderSQL orders rows by name the way NameLess does: case-folded first,
// then by code point, then by id. Pinning the "C" collation keeps the order
// independent of the database locale so both backends list alike.
const NameOrderSQL = `lower(name) COLLATE "C" ASC, name COLLATE "C" ASC, id ASC`

// NameLess is the in-memory counterpart of NameOrderSQL. Ties fall through to
// the table's id order.
func NameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
