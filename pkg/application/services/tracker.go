package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vsinha/importdesk/pkg/application/dto"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	"github.com/vsinha/importdesk/pkg/domain/repositories"
	domainservices "github.com/vsinha/importdesk/pkg/domain/services"
	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
	"github.com/vsinha/importdesk/pkg/infrastructure/events"
	"github.com/vsinha/importdesk/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/importdesk/pkg/infrastructure/seed"
	"github.com/vsinha/importdesk/pkg/infrastructure/store"
	"github.com/vsinha/importdesk/pkg/logger"
	"go.uber.org/multierr"
)

// Store keys for the persisted collections
const (
	MaterialsKey     = "materials"
	OrdersKey        = "orders"
	OrderSequenceKey = "order_sequence"
	EventsKey        = "events"
)

// TrackerOptions overrides the tracker's collaborators. Zero values pick
// the production defaults.
type TrackerOptions struct {
	Now           func() time.Time
	NewID         func() string
	Logger        *logger.Logger
	SeedMaterials func() []*entities.Material
	SeedOrders    func() []*entities.ImportOrder
	// EventHandlers are subscribed to every tracker event type
	EventHandlers []events.EventHandler
}

var trackerEventTypes = []string{
	events.MaterialRegisteredEvent,
	events.MaterialUpdatedEvent,
	events.OrderCreatedEvent,
	events.OrderStatusChangedEvent,
	events.OrderDocumentAttachedEvent,
}

// LoadReport records how each collection was obtained at startup
type LoadReport struct {
	Materials     store.LoadOutcome
	Orders        store.LoadOutcome
	OrderSequence store.LoadOutcome
	Events        store.LoadOutcome
}

// Tracker is the application state: the catalog, the order log and the
// order number sequence. Every mutating command persists what it changed
// before returning, and undoes the in-memory change if persisting fails.
type Tracker struct {
	store     store.Store
	materials repositories.MaterialRepository
	orders    repositories.OrderRepository
	sequence  *domainservices.OrderSequence
	journal   *events.InMemoryEventStore
	now       func() time.Time
	newID     func() string
	log       *logger.Logger
	report    LoadReport
}

// NewTracker loads the collections from s, falling back to seed data for
// any key that is absent or unreadable
func NewTracker(ctx context.Context, s store.Store, opts TrackerOptions) (*Tracker, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.SeedMaterials == nil {
		opts.SeedMaterials = seed.Materials
	}
	if opts.SeedOrders == nil {
		opts.SeedOrders = seed.Orders
	}

	t := &Tracker{
		store: s,
		now:   opts.Now,
		newID: opts.NewID,
		log:   opts.Logger,
	}

	materials, outcome, err := store.LoadOrSeed(ctx, s, MaterialsKey, opts.SeedMaterials,
		func(ms []*entities.Material) error {
			return memory.NewMaterialRepository(len(ms)).LoadMaterials(ms)
		}, t.log)
	if err != nil {
		return nil, err
	}
	t.report.Materials = outcome
	materialRepo := memory.NewMaterialRepository(len(materials))
	if err := materialRepo.LoadMaterials(materials); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed materials invalid")
	}
	t.materials = materialRepo

	orders, outcome, err := store.LoadOrSeed(ctx, s, OrdersKey, opts.SeedOrders,
		func(list []*entities.ImportOrder) error {
			return memory.NewOrderRepository(len(list)).LoadOrders(list)
		}, t.log)
	if err != nil {
		return nil, err
	}
	t.report.Orders = outcome
	orderRepo := memory.NewOrderRepository(len(orders))
	if err := orderRepo.LoadOrders(orders); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed orders invalid")
	}
	t.orders = orderRepo

	floor := sequenceFloor(orders)
	last, outcome, err := store.LoadOrSeed(ctx, s, OrderSequenceKey,
		func() int64 { return floor },
		func(stored int64) error {
			if stored < floor {
				return fmt.Errorf("sequence %d is behind existing order numbers (%d)", stored, floor)
			}
			return nil
		}, t.log)
	if err != nil {
		return nil, err
	}
	t.report.OrderSequence = outcome
	t.sequence = domainservices.NewOrderSequence(last)

	journal, outcome, err := store.LoadOrSeed(ctx, s, EventsKey,
		func() []events.BaseEvent { return []events.BaseEvent{} },
		func(list []events.BaseEvent) error {
			return events.NewInMemoryEventStore(nil).Restore(list)
		}, t.log)
	if err != nil {
		return nil, err
	}
	t.report.Events = outcome
	t.journal = events.NewInMemoryEventStore(t.log)
	if err := t.journal.Restore(journal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore event journal")
	}
	for _, handler := range opts.EventHandlers {
		if err := t.journal.Subscribe(trackerEventTypes, handler); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "subscribe event handler")
		}
	}

	t.log.Debug(t.log.WithFields(ctx, map[string]any{
		"materials":      len(materials),
		"orders":         len(orders),
		"order_sequence": last,
		"events":         len(journal),
	}), "tracker state loaded")

	return t, nil
}

// sequenceFloor is the lowest last-issued sequence consistent with orders
func sequenceFloor(orders []*entities.ImportOrder) int64 {
	floor := int64(len(orders))
	for _, order := range orders {
		if seq, ok := domainservices.ParseOrderSequence(order.OrderNumber); ok && seq > floor {
			floor = seq
		}
	}
	return floor
}

// LoadReport tells whether each collection was read, seeded or recovered
func (t *Tracker) LoadReport() LoadReport {
	return t.report
}

func (t *Tracker) today() entities.Date {
	return entities.DateOf(t.now())
}

// RegisterMaterial adds a material to the catalog, assigning its id and
// registration date
func (t *Tracker) RegisterMaterial(ctx context.Context, input dto.MaterialInput) (*entities.Material, error) {
	material, err := t.buildMaterial(input)
	if err != nil {
		return nil, err
	}
	if err := t.materials.SaveMaterial(material); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "register material")
	}
	if err := t.persistMaterials(ctx); err != nil {
		_ = t.materials.RemoveMaterial(material.ID)
		return nil, err
	}

	t.log.Info(t.log.WithMaterialID(ctx, string(material.ID)), "material registered")
	t.recordMaterialRegistered(ctx, material)
	return material, nil
}

// ImportMaterials registers a batch of materials. Either every row is
// registered or none is; all row errors are reported together.
func (t *Tracker) ImportMaterials(ctx context.Context, inputs []dto.MaterialInput) ([]*entities.Material, error) {
	var errs error
	built := make([]*entities.Material, 0, len(inputs))
	for i, input := range inputs {
		material, err := t.buildMaterial(input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		built = append(built, material)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "import materials").
			WithDetails(errorLines(errs))
	}

	saved := make([]entities.MaterialID, 0, len(built))
	rollback := func() {
		for _, id := range saved {
			_ = t.materials.RemoveMaterial(id)
		}
	}
	for _, material := range built {
		if err := t.materials.SaveMaterial(material); err != nil {
			rollback()
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "import materials")
		}
		saved = append(saved, material.ID)
	}
	if err := t.persistMaterials(ctx); err != nil {
		rollback()
		return nil, err
	}

	t.log.Info(t.log.WithField(ctx, "count", len(built)), "materials imported")
	for _, material := range built {
		t.recordMaterialRegistered(ctx, material)
	}
	return built, nil
}

// UpdateMaterial replaces a catalog entry's attributes. Orders already
// placed keep the snapshot they were created with.
func (t *Tracker) UpdateMaterial(ctx context.Context, id entities.MaterialID, input dto.MaterialInput) (*entities.Material, error) {
	previous, err := t.GetMaterial(id)
	if err != nil {
		return nil, err
	}
	input.Normalize()
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	updated := materialFromInput(id, previous.RegisteredOn, input)
	if err := t.materials.UpdateMaterial(updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "update material")
	}
	if err := t.persistMaterials(ctx); err != nil {
		_ = t.materials.UpdateMaterial(previous)
		return nil, err
	}

	t.log.Info(t.log.WithMaterialID(ctx, string(id)), "material updated")
	t.record(ctx, events.MaterialStream(string(id)), events.MaterialUpdatedEvent, events.MaterialUpdated{
		MaterialID:   string(id),
		OldUnitPrice: previous.UnitPrice,
		NewUnitPrice: updated.UnitPrice,
		OldStatus:    string(previous.Status),
		NewStatus:    string(updated.Status),
	})
	return updated, nil
}

func (t *Tracker) buildMaterial(input dto.MaterialInput) (*entities.Material, error) {
	input.Normalize()
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	material := materialFromInput(entities.MaterialID(t.newID()), t.today(), input)
	if err := material.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid material")
	}
	return material, nil
}

func materialFromInput(id entities.MaterialID, registeredOn entities.Date, input dto.MaterialInput) *entities.Material {
	return &entities.Material{
		ID:                id,
		Name:              input.Name,
		Code:              input.Code,
		Category:          input.Category,
		Description:       input.Description,
		Supplier:          input.Supplier,
		OriginCountry:     input.OriginCountry,
		UnitPrice:         input.UnitPrice,
		Unit:              input.Unit,
		MinOrderQty:       input.MinOrderQty,
		LeadTimeDays:      input.LeadTimeDays,
		RegisteredOn:      registeredOn,
		Status:            input.Status,
		TariffRate:        input.TariffRate,
		RequiredDocuments: input.RequiredDocuments,
	}
}

// QuoteOrder previews the cost and delivery date of an order without
// creating it
func (t *Tracker) QuoteOrder(materialID entities.MaterialID, input dto.OrderInput) (*domainservices.Quote, error) {
	material, err := t.GetMaterial(materialID)
	if err != nil {
		return nil, err
	}
	if err := t.prepareOrderInput(material, &input); err != nil {
		return nil, err
	}
	quote := domainservices.QuoteOrder(material, input.Quantity, input.OrderDate, input.LogisticsCost)
	return &quote, nil
}

// CreateOrder places an import order against a catalog material. The order
// keeps a deep copy of the material as it is now.
func (t *Tracker) CreateOrder(ctx context.Context, materialID entities.MaterialID, input dto.OrderInput) (*entities.ImportOrder, error) {
	material, err := t.GetMaterial(materialID)
	if err != nil {
		return nil, err
	}
	if err := t.prepareOrderInput(material, &input); err != nil {
		return nil, err
	}

	quote := domainservices.QuoteOrder(material, input.Quantity, input.OrderDate, input.LogisticsCost)
	previousSequence := t.sequence.Last()
	sequence := t.sequence.Next()
	order := &entities.ImportOrder{
		ID:                entities.OrderID(t.newID()),
		OrderNumber:       domainservices.FormatOrderNumber(t.now().Year(), sequence),
		MaterialID:        material.ID,
		Material:          material.Clone(),
		Quantity:          input.Quantity,
		TotalPrice:        quote.TotalPrice,
		OrderDate:         input.OrderDate,
		EstimatedDelivery: quote.EstimatedDelivery,
		Status:            input.Status,
		SupplierContact:   input.SupplierContact,
		UploadedDocuments: []string{},
		Notes:             input.Notes,
		LogisticsCost:     input.LogisticsCost,
		TariffCost:        quote.TariffCost,
	}

	if err := t.orders.SaveOrder(order); err != nil {
		t.sequence.Rewind(previousSequence)
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create order")
	}
	// The sequence is written first so a number is never issued twice, even
	// if the orders write fails afterwards.
	if err := store.SaveJSON(ctx, t.store, OrderSequenceKey, t.sequence.Last()); err != nil {
		_ = t.orders.RemoveOrder(order.ID)
		t.sequence.Rewind(previousSequence)
		return nil, err
	}
	if err := t.persistOrders(ctx); err != nil {
		_ = t.orders.RemoveOrder(order.ID)
		return nil, err
	}

	t.log.Info(t.log.WithFields(ctx, map[string]any{
		"order_number": order.OrderNumber,
		"material_id":  string(material.ID),
		"total_price":  order.TotalPrice.StringFixed(2),
	}), "import order created")
	t.record(ctx, events.OrderStream(string(order.ID)), events.OrderCreatedEvent, events.OrderCreated{
		OrderNumber: order.OrderNumber,
		MaterialID:  string(material.ID),
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		Status:      string(order.Status),
	})
	return order, nil
}

func (t *Tracker) prepareOrderInput(material *entities.Material, input *dto.OrderInput) error {
	input.ApplyDefaults(t.today())
	if err := dto.Validate(*input); err != nil {
		return err
	}
	if input.Quantity < material.MinOrderQty {
		return pkgerrors.Newf(pkgerrors.CodeValidation,
			"quantity %d is below the minimum order quantity %d", input.Quantity, material.MinOrderQty).
			WithDetails(map[string]string{
				"quantity": fmt.Sprintf("must be at least %d", material.MinOrderQty),
			})
	}
	return nil
}

// UpdateOrderStatus moves an order to any status; transitions are not
// restricted
func (t *Tracker) UpdateOrderStatus(ctx context.Context, id entities.OrderID, status entities.OrderStatus) (*entities.ImportOrder, error) {
	if !status.Valid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown order status %q", status).
			WithDetails(map[string]string{"status": "is invalid"})
	}
	return t.mutateOrder(ctx, id, func(order *entities.ImportOrder) (string, any) {
		from := order.Status
		order.Status = status
		return events.OrderStatusChangedEvent, events.OrderStatusChanged{
			OrderNumber: order.OrderNumber,
			From:        string(from),
			To:          string(status),
		}
	})
}

// AttachOrderDocument records an uploaded document filename on an order
func (t *Tracker) AttachOrderDocument(ctx context.Context, id entities.OrderID, name string) (*entities.ImportOrder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document name cannot be empty").
			WithDetails(map[string]string{"document": "is required"})
	}
	return t.mutateOrder(ctx, id, func(order *entities.ImportOrder) (string, any) {
		order.UploadedDocuments = append(order.UploadedDocuments, name)
		return events.OrderDocumentAttachedEvent, events.OrderDocumentAttached{
			OrderNumber: order.OrderNumber,
			Document:    name,
		}
	})
}

func (t *Tracker) mutateOrder(
	ctx context.Context,
	id entities.OrderID,
	mutate func(order *entities.ImportOrder) (eventType string, payload any),
) (*entities.ImportOrder, error) {
	previous, err := t.GetOrder(id)
	if err != nil {
		return nil, err
	}
	updated := previous.Clone()
	eventType, payload := mutate(&updated)
	if err := t.orders.UpdateOrder(&updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "update order")
	}
	if err := t.persistOrders(ctx); err != nil {
		_ = t.orders.UpdateOrder(previous)
		return nil, err
	}

	t.log.Info(t.log.WithFields(ctx, map[string]any{
		"order_number": updated.OrderNumber,
		"status":       string(updated.Status),
		"event_type":   eventType,
	}), "order updated")
	t.record(ctx, events.OrderStream(string(id)), eventType, payload)
	return &updated, nil
}

// GetMaterial returns the catalog entry with the given id
func (t *Tracker) GetMaterial(id entities.MaterialID) (*entities.Material, error) {
	material, err := t.materials.GetMaterial(id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("material %s", id))
	}
	return material, nil
}

// GetOrder returns the order with the given id
func (t *Tracker) GetOrder(id entities.OrderID) (*entities.ImportOrder, error) {
	order, err := t.orders.GetOrder(id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("order %s", id))
	}
	return order, nil
}

// FindOrderByNumber looks an order up by its IMP number
func (t *Tracker) FindOrderByNumber(number string) (*entities.ImportOrder, error) {
	for _, order := range t.ListOrders() {
		if strings.EqualFold(order.OrderNumber, number) {
			return order, nil
		}
	}
	return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "order %s not found", number)
}

// OrderHistory returns the recorded events of one order, oldest first
func (t *Tracker) OrderHistory(id entities.OrderID) ([]events.Event, error) {
	if _, err := t.GetOrder(id); err != nil {
		return nil, err
	}
	return t.journal.ReadEvents(events.OrderStream(string(id)), 1)
}

// MaterialHistory returns the recorded events of one material, oldest first
func (t *Tracker) MaterialHistory(id entities.MaterialID) ([]events.Event, error) {
	if _, err := t.GetMaterial(id); err != nil {
		return nil, err
	}
	return t.journal.ReadEvents(events.MaterialStream(string(id)), 1)
}

// Activity returns the most recent journal events across all materials and
// orders, oldest first. A limit of zero or less returns the whole journal.
func (t *Tracker) Activity(limit int) ([]events.Event, error) {
	from := 0
	if limit > 0 {
		if total := len(t.journal.Journal()); total > limit {
			from = total - limit
		}
	}
	return t.journal.ReadAllEvents(from)
}

// ListMaterials returns the catalog in registration order
func (t *Tracker) ListMaterials() []*entities.Material {
	materials, _ := t.materials.GetAllMaterials()
	return materials
}

// ListOrders returns the order log in creation order
func (t *Tracker) ListOrders() []*entities.ImportOrder {
	orders, _ := t.orders.GetAllOrders()
	return orders
}

// FilterMaterials searches the catalog
func (t *Tracker) FilterMaterials(filter dto.MaterialFilter) []*entities.Material {
	return FilterMaterials(t.ListMaterials(), filter)
}

// FilterOrders searches the order log
func (t *Tracker) FilterOrders(filter dto.OrderFilter) []*entities.ImportOrder {
	return FilterOrders(t.ListOrders(), filter)
}

// DashboardStats summarizes the catalog and order log
func (t *Tracker) DashboardStats() dto.DashboardStats {
	return ComputeDashboardStats(t.ListMaterials(), t.ListOrders())
}

func (t *Tracker) persistMaterials(ctx context.Context) error {
	if err := store.SaveJSON(ctx, t.store, MaterialsKey, t.ListMaterials()); err != nil {
		t.log.Error(t.log.WithStoreKey(ctx, MaterialsKey), "persisting materials failed", err)
		return err
	}
	return nil
}

func (t *Tracker) persistOrders(ctx context.Context) error {
	if err := store.SaveJSON(ctx, t.store, OrdersKey, t.ListOrders()); err != nil {
		t.log.Error(t.log.WithStoreKey(ctx, OrdersKey), "persisting orders failed", err)
		return err
	}
	return nil
}

func (t *Tracker) recordMaterialRegistered(ctx context.Context, material *entities.Material) {
	t.record(ctx, events.MaterialStream(string(material.ID)), events.MaterialRegisteredEvent, events.MaterialRegistered{
		MaterialID: string(material.ID),
		Name:       material.Name,
		UnitPrice:  material.UnitPrice,
	})
}

// record appends to the event journal after a committed change. The journal
// is history only, so a failed append or write is logged and not returned.
func (t *Tracker) record(ctx context.Context, stream, eventType string, payload any) {
	event, err := events.NewEvent(eventType, stream, payload, t.now())
	if err != nil {
		t.log.Warn(t.log.WithField(ctx, "event_type", eventType), err.Error())
		return
	}
	if err := t.journal.AppendEvent(stream, event); err != nil {
		t.log.Warn(t.log.WithField(ctx, "event_type", eventType), err.Error())
		return
	}
	if err := store.SaveJSON(ctx, t.store, EventsKey, t.journal.Journal()); err != nil {
		t.log.Warn(t.log.WithStoreKey(ctx, EventsKey), "persisting event journal failed: "+err.Error())
	}
}

func errorLines(err error) []string {
	errs := multierr.Errors(err)
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return lines
}
