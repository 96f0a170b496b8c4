package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	"github.com/billfold/billfold/internal/clock"
	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/events"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/invoice/layout"
	"github.com/billfold/billfold/internal/invoice/render"
	"github.com/billfold/billfold/internal/observability/metrics"
	"github.com/billfold/billfold/internal/observability/tracing"
	"github.com/billfold/billfold/internal/ownercontext"
	"github.com/billfold/billfold/internal/sequence"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Sequence   *sequence.Generator
	Outbox     *events.Outbox
	CompanySvc companydomain.Service
	ClientSvc  clientdomain.Service
	Preview    render.PreviewRenderer
	Exporter   render.ExportRenderer
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	sequence   *sequence.Generator
	outbox     *events.Outbox
	companySvc companydomain.Service
	clientSvc  clientdomain.Service
	preview    render.PreviewRenderer
	exporter   render.ExportRenderer
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		sequence:   p.Sequence,
		outbox:     p.Outbox,
		companySvc: p.CompanySvc,
		clientSvc:  p.ClientSvc,
		preview:    p.Preview,
		exporter:   p.Exporter,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Tax < 0 {
		return nil, invoicedomain.ErrInvalidTax
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	var clientID snowflake.ID
	if strings.TrimSpace(req.ClientID) != "" {
		clientID, err = parseID(req.ClientID, invoicedomain.ErrInvalidClient)
		if err != nil {
			return nil, err
		}
		if _, err := s.clientSvc.GetByID(ctx, clientID.String()); err != nil {
			if errors.Is(err, clientdomain.ErrNotFound) {
				return nil, invoicedomain.ErrClientNotFound
			}
			return nil, err
		}
	}

	number, err := s.sequence.Next(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	if req.IssueDate.IsZero() {
		req.IssueDate = s.clock.Now()
	}
	if req.DueDate.IsZero() {
		req.DueDate = req.IssueDate.AddDate(0, 0, 30)
	}

	record := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		OwnerID:       ownerID,
		ClientID:      clientID,
		InvoiceNumber: number,
		Status:        invoicedomain.StatusDraft,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		CustomerRef:   strings.TrimSpace(req.CustomerRef),
		Currency:      currency,
		Tax:           req.Tax,
		Notes:         req.Notes,
		Items:         s.buildItems(ownerID, req.Items),
	}
	if req.Metadata != nil {
		record.Metadata = datatypes.JSONMap(req.Metadata)
	}
	record.Recalculate()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx := range record.Items {
			record.Items[idx].InvoiceID = record.ID
		}
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return err
		}
		if len(record.Items) > 0 {
			if err := tx.Create(&record.Items).Error; err != nil {
				return err
			}
		}
		return s.publishTx(ctx, tx, record, events.EventInvoiceCreated)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	page := req.Pagination.Normalize()
	offset := page.Offset()

	query := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC")
	if status := strings.TrimSpace(req.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		clientID, err := parseID(raw, invoicedomain.ErrInvalidClient)
		if err != nil {
			return invoicedomain.ListInvoiceResponse{}, err
		}
		query = query.Where("client_id = ?", clientID)
	}

	var records []invoicedomain.Invoice
	if err := query.Offset(offset).Limit(page.PageSize + 1).Find(&records).Error; err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	resp := invoicedomain.ListInvoiceResponse{
		PageInfo: pagination.BuildPageInfo(len(records), page.PageSize, offset),
	}
	if len(records) > page.PageSize {
		records = records[:page.PageSize]
	}
	resp.Invoices = records
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	invoiceID, err := parseID(id, invoicedomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var record invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ? AND id = ?", ownerID, invoiceID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateInvoiceRequest) (*invoicedomain.Invoice, error) {
	record, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != invoicedomain.StatusDraft && status != invoicedomain.StatusComplete {
			return nil, invoicedomain.ErrInvalidStatus
		}
		record.Status = status
	}
	if req.ClientID != nil {
		if strings.TrimSpace(*req.ClientID) == "" {
			record.ClientID = 0
		} else {
			clientID, err := parseID(*req.ClientID, invoicedomain.ErrInvalidClient)
			if err != nil {
				return nil, err
			}
			if _, err := s.clientSvc.GetByID(ctx, clientID.String()); err != nil {
				if errors.Is(err, clientdomain.ErrNotFound) {
					return nil, invoicedomain.ErrClientNotFound
				}
				return nil, err
			}
			record.ClientID = clientID
		}
	}
	if req.IssueDate != nil {
		record.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		record.DueDate = *req.DueDate
	}
	if req.CustomerRef != nil {
		record.CustomerRef = strings.TrimSpace(*req.CustomerRef)
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if currency != "" {
			record.Currency = currency
		}
	}
	if req.Tax != nil {
		if *req.Tax < 0 {
			return nil, invoicedomain.ErrInvalidTax
		}
		record.Tax = *req.Tax
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.Items != nil {
		if err := validateItems(req.Items); err != nil {
			return nil, err
		}
		record.Items = s.buildItems(record.OwnerID, req.Items)
		for idx := range record.Items {
			record.Items[idx].InvoiceID = record.ID
		}
	}
	record.Recalculate()
	record.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Items != nil {
			if err := tx.Where("invoice_id = ?", record.ID).Delete(&invoicedomain.InvoiceItem{}).Error; err != nil {
				return err
			}
			if len(record.Items) > 0 {
				if err := tx.Create(&record.Items).Error; err != nil {
					return err
				}
			}
		}
		if err := tx.Omit(clause.Associations).Save(record).Error; err != nil {
			return err
		}
		return s.publishTx(ctx, tx, record, events.EventInvoiceUpdated)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return err
	}
	invoiceID, err := parseID(id, invoicedomain.ErrInvalidID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, invoiceID).Delete(&invoicedomain.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invoicedomain.ErrNotFound
		}
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&invoicedomain.InvoiceItem{}).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			OwnerID: ownerID,
			Type:    events.EventInvoiceDeleted,
			Payload: events.InvoicePayload{InvoiceID: invoiceID.String()}.ToMap(),
		})
	})
}

// Preview renders the on-screen pages for the invoice's current persisted
// state. Missing sender or recipient context degrades to placeholders; a
// renderer failure is reported as ErrPreviewUnavailable so the edit session
// can keep going.
func (s *Service) Preview(ctx context.Context, id string) (*invoicedomain.PreviewResult, error) {
	ctx, span := tracing.StartSpan(ctx, "invoice.preview",
		tracing.InvoiceID(id), tracing.Renderer("preview"))
	defer span.End()

	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sender, recipient, err := s.resolveParties(ctx, record, false)
	if err != nil {
		return nil, err
	}

	doc := buildDocumentView(record, sender, recipient)
	plan := layout.ComputePlan(len(doc.Items), render.PreviewPageCapacity)
	start := time.Now()
	pages, err := s.preview.RenderPages(doc, plan)
	metrics.Render().ObserveRender("preview", time.Since(start), plan.TotalPages, err)
	if err != nil {
		s.log.Error("preview render failed", zap.String("invoice_id", record.ID.String()), zap.Error(err))
		return nil, invoicedomain.ErrPreviewUnavailable
	}

	return &invoicedomain.PreviewResult{
		InvoiceID:  record.ID.String(),
		TotalPages: plan.TotalPages,
		Pages:      pages,
	}, nil
}

// Export renders the downloadable PDF from the persisted snapshot. The
// invoice, sender profile and recipient are all re-fetched here so the
// artifact reflects exactly what was saved, never an in-flight edit.
func (s *Service) Export(ctx context.Context, id string) (*invoicedomain.ExportResult, error) {
	ctx, span := tracing.StartSpan(ctx, "invoice.export",
		tracing.InvoiceID(id), tracing.Renderer("export"))
	defer span.End()

	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sender, recipient, err := s.resolveParties(ctx, record, true)
	if err != nil {
		return nil, err
	}

	doc := buildDocumentView(record, sender, recipient)
	plan := layout.ComputePlan(len(doc.Items), render.ExportPageCapacity)
	start := time.Now()
	data, err := s.exporter.Render(doc, plan)
	metrics.Render().ObserveRender("export", time.Since(start), plan.TotalPages, err)
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Publish(ctx, events.Event{
		OwnerID: record.OwnerID,
		Type:    events.EventInvoiceExported,
		Payload: invoicePayload(record),
	}); err != nil {
		s.log.Warn("export event publish failed", zap.String("invoice_id", record.ID.String()), zap.Error(err))
	}

	return &invoicedomain.ExportResult{
		Filename:    render.ExportFilename(recipient.DisplayName, record.InvoiceNumber),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *Service) publishTx(ctx context.Context, tx *gorm.DB, record *invoicedomain.Invoice, eventType string) error {
	return s.outbox.PublishTx(ctx, tx, events.Event{
		OwnerID: record.OwnerID,
		Type:    eventType,
		Payload: invoicePayload(record),
	})
}

func invoicePayload(record *invoicedomain.Invoice) map[string]any {
	return events.InvoicePayload{
		InvoiceID:     record.ID.String(),
		InvoiceNumber: record.InvoiceNumber,
		Status:        record.Status,
		Total:         record.Total,
	}.ToMap()
}

// resolveParties fetches the sender profile and the recipient client. In
// strict mode (export) a missing party is an error; otherwise it resolves
// to nil and the preview shows a placeholder.
func (s *Service) resolveParties(ctx context.Context, record *invoicedomain.Invoice, strict bool) (*companydomain.Profile, *clientdomain.Client, error) {
	sender, err := s.companySvc.Get(ctx)
	if errors.Is(err, companydomain.ErrNotFound) {
		if strict {
			return nil, nil, invoicedomain.ErrProfileNotFound
		}
		sender = nil
	} else if err != nil {
		return nil, nil, err
	}

	var recipient *clientdomain.Client
	if record.ClientID != 0 {
		recipient, err = s.clientSvc.GetByID(ctx, record.ClientID.String())
		if errors.Is(err, clientdomain.ErrNotFound) {
			if strict {
				return nil, nil, invoicedomain.ErrClientNotFound
			}
			recipient = nil
		} else if err != nil {
			return nil, nil, err
		}
	} else if strict {
		return nil, nil, invoicedomain.ErrClientNotFound
	}

	return sender, recipient, nil
}

func (s *Service) buildItems(ownerID snowflake.ID, inputs []invoicedomain.LineItemInput) []invoicedomain.InvoiceItem {
	items := make([]invoicedomain.InvoiceItem, 0, len(inputs))
	position := 0
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			// Transient editor rows; never persisted.
			continue
		}
		item := invoicedomain.InvoiceItem{
			ID:          s.genID.Generate(),
			OwnerID:     ownerID,
			Position:    position,
			Name:        name,
			Description: input.Description,
			Quantity:    input.Quantity,
			UnitCost:    input.UnitCost,
		}
		item.Recalculate()
		items = append(items, item)
		position++
	}
	return items
}

func buildDocumentView(record *invoicedomain.Invoice, sender *companydomain.Profile, recipient *clientdomain.Client) layout.DocumentView {
	doc := layout.DocumentView{
		InvoiceNumber: record.InvoiceNumber,
		Status:        record.Status,
		IssueDate:     record.IssueDate,
		DueDate:       record.DueDate,
		CustomerRef:   record.CustomerRef,
		Currency:      record.Currency,
		Subtotal:      record.Subtotal,
		Tax:           record.Tax,
		Total:         record.Total,
		Notes:         record.Notes,
	}
	if sender != nil {
		doc.Sender = &layout.PartyView{
			DisplayName:  sender.DisplayName,
			Email:        sender.Email,
			Phone:        sender.Phone,
			AddressLines: sender.Address.Lines(),
		}
	}
	if recipient != nil {
		doc.Recipient = &layout.PartyView{
			DisplayName:  recipient.DisplayName,
			Email:        recipient.Email,
			Phone:        recipient.Phone,
			AddressLines: recipient.Address.Lines(),
		}
	}
	for _, item := range record.ValidItems() {
		doc.Items = append(doc.Items, layout.LineItemView{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			LineTotal:   item.LineTotal,
		})
	}
	return doc
}

func validateItems(items []invoicedomain.LineItemInput) error {
	for _, item := range items {
		if item.Quantity < 0 {
			return invoicedomain.ErrInvalidQuantity
		}
		if item.UnitCost < 0 {
			return invoicedomain.ErrInvalidUnitCost
		}
	}
	return nil
}

func ownerFromContext(ctx context.Context) (snowflake.ID, error) {
	ownerID, ok := ownercontext.OwnerIDFromContext(ctx)
	if !ok {
		return 0, invoicedomain.ErrInvalidOwner
	}
	return snowflake.ID(ownerID), nil
}

func parseID(raw string, invalidErr error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, invalidErr
	}
	return id, nil
}
