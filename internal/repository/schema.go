package repository

// Schema returns the idempotent DDL for every persisted table.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS prices (
			symbol         TEXT NOT NULL,
			published_date TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			open           REAL NOT NULL,
			high           REAL NOT NULL,
			low            REAL NOT NULL,
			close          REAL NOT NULL,
			PRIMARY KEY (symbol, published_date)
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id    TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
}
