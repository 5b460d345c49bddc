package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTotal(t *testing.T) {
	report := Report{"promotions": 4, "events": 2, "followers": 11}
	assert.Equal(t, int64(17), report.Total())
	assert.Equal(t, int64(0), Report{}.Total())
}

func TestRelationSetsAreWellFormed(t *testing.T) {
	sets := map[string][]Relation{
		"full delete": FullDeleteRelations,
		"archive":     ArchiveRelations,
		"sweep":       SweepRelations,
	}

	for name, relations := range sets {
		t.Run(name, func(t *testing.T) {
			seen := map[string]bool{}
			for _, rel := range relations {
				require.NotEmpty(t, rel.Name)
				require.NotEmpty(t, rel.Table)
				require.NotEmpty(t, rel.FKColumn)
				assert.False(t, seen[rel.Name], "duplicate relation %s", rel.Name)
				seen[rel.Name] = true
			}
		})
	}
}

func TestArchiveRelationsMirrorFullDelete(t *testing.T) {
	// Archiving touches the same collections as a full delete; the only
	// difference is which ones are hard-deleted for lack of an archived
	// state.
	fullNames := map[string]bool{}
	for _, rel := range FullDeleteRelations {
		fullNames[rel.Name] = true
	}
	require.Len(t, ArchiveRelations, len(FullDeleteRelations))
	for _, rel := range ArchiveRelations {
		assert.True(t, fullNames[rel.Name], "relation %s missing from full delete set", rel.Name)
	}

	hardDeleted := []string{}
	for _, rel := range ArchiveRelations {
		if rel.HardDeleteOnArchive {
			hardDeleted = append(hardDeleted, rel.Name)
		}
	}
	assert.ElementsMatch(t,
		[]string{"followers", "emailChangeRequests", "passwordChangeRequests"},
		hardDeleted)
}

func TestSweepRelationsAreSubsetOfFullDelete(t *testing.T) {
	fullNames := map[string]bool{}
	for _, rel := range FullDeleteRelations {
		fullNames[rel.Name] = true
	}
	for _, rel := range SweepRelations {
		assert.True(t, fullNames[rel.Name], "relation %s missing from full delete set", rel.Name)
		assert.False(t, rel.HardDeleteOnArchive)
	}
}
