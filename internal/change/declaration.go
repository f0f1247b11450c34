package change

// EnsembleReviewFields returns the declared ensemble-review additions in
// application order. This list is the versioned contract for what must
// exist after migration: it is append-only across releases, and entries
// are never renamed, retyped, or removed once shipped.
func EnsembleReviewFields() []Change {
	return []Change{
		{
			Table:   "reports",
			Column:  "review_status",
			Type:    "TEXT",
			NotNull: true,
			Default: "'unreviewed'",
		},
		{
			Table:   "reports",
			Column:  "review_count",
			Type:    "INTEGER",
			NotNull: true,
			Default: "0",
		},
		{
			Table:   "reports",
			Column:  "consensus_verdict",
			Type:    "TEXT",
			NotNull: true,
			Default: "''",
		},
		{
			Table:   "reports",
			Column:  "consensus_confidence",
			Type:    "REAL",
			NotNull: true,
			Default: "0",
		},
		{
			Table:  "reports",
			Column: "last_reviewed_at",
			Type:   "DATETIME",
		},
		{
			Table: "ensemble_reviews",
			CreateSQL: `CREATE TABLE ensemble_reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id TEXT NOT NULL,
	reviewer TEXT NOT NULL,
	verdict TEXT NOT NULL,
	confidence REAL NOT NULL DEFAULT 0,
	notes TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);
CREATE INDEX IF NOT EXISTS idx_ensemble_reviews_report_id ON ensemble_reviews(report_id)`,
		},
	}
}
