package cascade

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Relation describes one satellite table reachable from a business.
// The delete/archive/sweep fan-outs are all driven by relation slices
// instead of hand-written per-table loops.
type Relation struct {
	// Name keys the relation's count in the report.
	Name string
	// Table and FKColumn locate the related rows.
	Table    string
	FKColumn string
	// HardDeleteOnArchive marks relations that have no archived state
	// (followers, change requests): archiving the business deletes them.
	HardDeleteOnArchive bool
}

type Mode int

const (
	ModeDelete Mode = iota
	ModeArchive
)

// Report holds per-relation affected-row counts.
type Report map[string]int64

func (r Report) Total() int64 {
	var total int64
	for _, n := range r {
		total += n
	}
	return total
}

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Run walks the relations in order and applies the mode to each. There
// is no transaction spanning the fan-out: a failure partway through
// returns the partial report alongside the error, and the caller is
// expected to re-run to completion.
func (e *Engine) Run(businessID string, relations []Relation, mode Mode) (Report, error) {
	report := make(Report, len(relations))

	for _, rel := range relations {
		var (
			affected int64
			err      error
		)

		switch {
		case mode == ModeDelete || rel.HardDeleteOnArchive:
			affected, err = e.deleteAll(rel, businessID)
		default:
			affected, err = e.archiveAll(rel, businessID)
		}

		if err != nil {
			return report, fmt.Errorf("cascade %s on %s: %w", rel.Name, rel.Table, err)
		}
		report[rel.Name] = affected
	}

	return report, nil
}

func (e *Engine) deleteAll(rel Relation, businessID string) (int64, error) {
	tx := e.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", rel.Table, rel.FKColumn),
		businessID,
	)
	return tx.RowsAffected, tx.Error
}

func (e *Engine) archiveAll(rel Relation, businessID string) (int64, error) {
	tx := e.db.Exec(
		fmt.Sprintf("UPDATE %s SET is_active = false, deleted_at = ? WHERE %s = ?", rel.Table, rel.FKColumn),
		time.Now(),
		businessID,
	)
	return tx.RowsAffected, tx.Error
}
