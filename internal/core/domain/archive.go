package domain

import "fmt"

// ArchivePageSize is the number of account codes covered by one archive page.
const ArchivePageSize = 100

// ArchivePage is an immutable historical grouping of accounts.
// Pages are loaded once and never mutated in place; touching an archived
// account copies it into the live store instead.
type ArchivePage struct {
	Series    string `json:"series"` // "A", "B", ...
	Number    int    `json:"number"` // 1-based page number within the series
	Name      string `json:"name"`
	StartCode string `json:"startCode"`
	EndCode   string `json:"endCode"`
}

// Ref returns the short page reference used in replies and on accounts, e.g. "B8".
func (p ArchivePage) Ref() string {
	return fmt.Sprintf("%s%d", p.Series, p.Number)
}

// PageForCode computes the archive page a code falls into.
// Codes 1..100 map to page 1, 101..200 to page 2, and so on.
func PageForCode(code string) (series string, number int, err error) {
	series, n, err := CodeParts(code)
	if err != nil {
		return "", 0, err
	}
	return series, ((n - 1) / ArchivePageSize) + 1, nil
}
