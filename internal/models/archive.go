package models

// ArchivePage is the DB-layer shape of an archive page header row.
type ArchivePage struct {
	Series    string `db:"series"`
	Number    int    `db:"number"`
	Name      string `db:"name"`
	StartCode string `db:"start_code"`
	EndCode   string `db:"end_code"`
}
