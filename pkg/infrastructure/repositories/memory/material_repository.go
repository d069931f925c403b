package memory

import (
	"fmt"

	"github.com/vsinha/importdesk/pkg/domain/entities"
	"github.com/vsinha/importdesk/pkg/domain/repositories"
	"go.uber.org/multierr"
)

// MaterialRepository keeps the catalog in insertion order
type MaterialRepository struct {
	materials    []entities.Material
	materialsMap map[entities.MaterialID]int
}

// NewMaterialRepository creates a new in-memory material repository
func NewMaterialRepository(expectedMaterials int) *MaterialRepository {
	return &MaterialRepository{
		materials:    make([]entities.Material, 0, expectedMaterials),
		materialsMap: make(map[entities.MaterialID]int, expectedMaterials),
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// LoadMaterials loads materials into the repository. Nothing is loaded if
// any material is invalid or its id is duplicated.
func (r *MaterialRepository) LoadMaterials(materials []*entities.Material) error {
	var errs error
	seen := make(map[entities.MaterialID]bool, len(materials))
	for i, material := range materials {
		if err := material.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("material %d: %w", i+1, err))
			continue
		}
		if seen[material.ID] || r.has(material.ID) {
			errs = multierr.Append(errs, fmt.Errorf("material %d: duplicate material id %s", i+1, material.ID))
			continue
		}
		seen[material.ID] = true
	}
	if errs != nil {
		return errs
	}

	for _, material := range materials {
		r.add(material.Clone())
	}
	return nil
}

// SaveMaterial adds a new material to the catalog
func (r *MaterialRepository) SaveMaterial(material *entities.Material) error {
	if err := material.Validate(); err != nil {
		return err
	}
	if r.has(material.ID) {
		return fmt.Errorf("duplicate material id %s", material.ID)
	}
	r.add(material.Clone())
	return nil
}

// UpdateMaterial replaces an existing catalog entry. The registration date is fixed.
func (r *MaterialRepository) UpdateMaterial(material *entities.Material) error {
	index, exists := r.materialsMap[material.ID]
	if !exists {
		return fmt.Errorf("material not found: %s", material.ID)
	}
	if !r.materials[index].RegisteredOn.Equal(material.RegisteredOn) {
		return fmt.Errorf("registration date of %s cannot change", material.ID)
	}
	if err := material.Validate(); err != nil {
		return err
	}
	r.materials[index] = material.Clone()
	return nil
}

// GetMaterial returns a copy of the material with the given id
func (r *MaterialRepository) GetMaterial(id entities.MaterialID) (*entities.Material, error) {
	index, exists := r.materialsMap[id]
	if !exists {
		return nil, fmt.Errorf("material not found: %s", id)
	}
	material := r.materials[index].Clone()
	return &material, nil
}

// GetAllMaterials returns copies of all materials in insertion order
func (r *MaterialRepository) GetAllMaterials() ([]*entities.Material, error) {
	materials := make([]*entities.Material, 0, len(r.materials))
	for i := range r.materials {
		material := r.materials[i].Clone()
		materials = append(materials, &material)
	}
	return materials, nil
}

// RemoveMaterial deletes a material and reindexes the ones after it
func (r *MaterialRepository) RemoveMaterial(id entities.MaterialID) error {
	index, exists := r.materialsMap[id]
	if !exists {
		return fmt.Errorf("material not found: %s", id)
	}
	r.materials = append(r.materials[:index], r.materials[index+1:]...)
	delete(r.materialsMap, id)
	for i := index; i < len(r.materials); i++ {
		r.materialsMap[r.materials[i].ID] = i
	}
	return nil
}

// Count returns the number of materials in the catalog
func (r *MaterialRepository) Count() int {
	return len(r.materials)
}

func (r *MaterialRepository) has(id entities.MaterialID) bool {
	_, exists := r.materialsMap[id]
	return exists
}

func (r *MaterialRepository) add(material entities.Material) {
	r.materialsMap[material.ID] = len(r.materials)
	r.materials = append(r.materials, material)
}
