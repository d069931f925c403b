package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

func newTestMaterial(id entities.MaterialID, name string) *entities.Material {
	return &entities.Material{
		ID:                id,
		Name:              name,
		Code:              "CODE-" + string(id),
		Category:          entities.Metals,
		Supplier:          "Acme",
		OriginCountry:     "Chile",
		UnitPrice:         decimal.NewFromInt(10),
		Unit:              entities.Kilogram,
		MinOrderQty:       5,
		LeadTimeDays:      20,
		RegisteredOn:      entities.NewDate(2024, 1, 10),
		Status:            entities.MaterialActive,
		TariffRate:        decimal.NewFromInt(8),
		RequiredDocuments: []string{"Invoice"},
	}
}

func TestMaterialRepository_SaveAndGet(t *testing.T) {
	repo := NewMaterialRepository(4)

	require.NoError(t, repo.SaveMaterial(newTestMaterial("m1", "Steel Rod")))

	got, err := repo.GetMaterial("m1")
	require.NoError(t, err)
	assert.Equal(t, "Steel Rod", got.Name)
	assert.Equal(t, 1, repo.Count())

	_, err = repo.GetMaterial("missing")
	assert.ErrorContains(t, err, "material not found: missing")
}

func TestMaterialRepository_SaveDuplicate(t *testing.T) {
	repo := NewMaterialRepository(4)
	require.NoError(t, repo.SaveMaterial(newTestMaterial("m1", "First")))

	err := repo.SaveMaterial(newTestMaterial("m1", "Second"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate material id m1")

	got, err := repo.GetMaterial("m1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
}

func TestMaterialRepository_SaveRejectsInvalid(t *testing.T) {
	repo := NewMaterialRepository(1)
	bad := newTestMaterial("m1", "Bad")
	bad.MinOrderQty = 0

	assert.Error(t, repo.SaveMaterial(bad))
	assert.Equal(t, 0, repo.Count())
}

func TestMaterialRepository_InsertionOrder(t *testing.T) {
	repo := NewMaterialRepository(3)
	for _, m := range []*entities.Material{
		newTestMaterial("c", "Cotton"),
		newTestMaterial("a", "Aluminium"),
		newTestMaterial("b", "Bronze"),
	} {
		require.NoError(t, repo.SaveMaterial(m))
	}

	all, err := repo.GetAllMaterials()
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Cotton", "Aluminium", "Bronze"}, names)
}

func TestMaterialRepository_ReturnsCopies(t *testing.T) {
	repo := NewMaterialRepository(1)
	original := newTestMaterial("m1", "Steel Rod")
	require.NoError(t, repo.SaveMaterial(original))

	original.Name = "Mutated after save"
	fetched, err := repo.GetMaterial("m1")
	require.NoError(t, err)
	fetched.RequiredDocuments[0] = "Mutated after get"

	again, err := repo.GetMaterial("m1")
	require.NoError(t, err)
	assert.Equal(t, "Steel Rod", again.Name)
	assert.Equal(t, []string{"Invoice"}, again.RequiredDocuments)
}

func TestMaterialRepository_LoadMaterials_WithDuplicates(t *testing.T) {
	repo := NewMaterialRepository(3)
	invalid := newTestMaterial("m3", "Invalid")
	invalid.LeadTimeDays = 0

	err := repo.LoadMaterials([]*entities.Material{
		newTestMaterial("m1", "One"),
		newTestMaterial("m1", "One again"),
		invalid,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "material 2: duplicate material id m1")
	assert.Contains(t, err.Error(), "material 3: lead time must be at least 1 day")
	assert.Equal(t, 0, repo.Count(), "a failed load must not partially populate the catalog")
}

func TestMaterialRepository_RemoveReindexes(t *testing.T) {
	repo := NewMaterialRepository(3)
	require.NoError(t, repo.LoadMaterials([]*entities.Material{
		newTestMaterial("m1", "One"),
		newTestMaterial("m2", "Two"),
		newTestMaterial("m3", "Three"),
	}))

	require.NoError(t, repo.RemoveMaterial("m2"))
	got, err := repo.GetMaterial("m3")
	require.NoError(t, err)
	assert.Equal(t, "Three", got.Name)
	assert.Error(t, repo.RemoveMaterial("m2"))
}

func TestMaterialRepository_UpdateMaterial(t *testing.T) {
	repo := NewMaterialRepository(1)
	require.NoError(t, repo.SaveMaterial(newTestMaterial("m1", "Steel Rod")))

	updated := newTestMaterial("m1", "Steel Rod 12mm")
	updated.UnitPrice = decimal.NewFromInt(14)
	require.NoError(t, repo.UpdateMaterial(updated))

	got, err := repo.GetMaterial("m1")
	require.NoError(t, err)
	assert.Equal(t, "Steel Rod 12mm", got.Name)
	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(14)))

	updated.RegisteredOn = entities.NewDate(2030, 1, 1)
	assert.ErrorContains(t, repo.UpdateMaterial(updated), "registration date of m1 cannot change")

	assert.ErrorContains(t, repo.UpdateMaterial(newTestMaterial("m9", "Ghost")), "material not found: m9")
}
