package repositories

import "github.com/vsinha/importdesk/pkg/domain/entities"

// MaterialRepository provides access to the material catalog
type MaterialRepository interface {
	GetMaterial(id entities.MaterialID) (*entities.Material, error)
	GetAllMaterials() ([]*entities.Material, error)
	SaveMaterial(material *entities.Material) error
	UpdateMaterial(material *entities.Material) error
	LoadMaterials(materials []*entities.Material) error
	// RemoveMaterial undoes a save; used when persisting the catalog fails
	RemoveMaterial(id entities.MaterialID) error
}
