package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"apparel-editpages/editpage"
	"apparel-editpages/models"
	"apparel-editpages/repository"
	"apparel-editpages/utils"
)

// Operation kinds
const (
	OpSynthesize = "synthesize"
	OpPatch      = "patch"
	OpRetire     = "retire"
)

// Operation selects what a batch run does to every product
type Operation struct {
	Kind    string
	Patches []editpage.SectionPatch
}

// Synthesize renders and writes a complete page per product
func Synthesize() Operation {
	return Operation{Kind: OpSynthesize}
}

// Patch applies section patches to the existing page of every product
func Patch(patches ...editpage.SectionPatch) Operation {
	return Operation{Kind: OpPatch, Patches: patches}
}

// Retire deletes the page of every product
func Retire() Operation {
	return Operation{Kind: OpRetire}
}

// String names the operation the way reports show it
func (o Operation) String() string {
	if o.Kind != OpPatch {
		return o.Kind
	}
	names := make([]string, 0, len(o.Patches))
	for _, p := range o.Patches {
		names = append(names, p.Name)
	}
	return o.Kind + "(" + strings.Join(names, ",") + ")"
}

// BatchOptions tune a BatchService
type BatchOptions struct {
	// OptimizeImages re-encodes inline images before synthesis
	OptimizeImages bool
	// DefaultGarmentType is given to products that name none
	DefaultGarmentType string
}

// BatchService runs an operation over many products, one at a time
type BatchService struct {
	store     repository.DocumentStoreInterface
	synth     *editpage.Synthesizer
	optimizer ImageOptimizerInterface
	opts      BatchOptions
	now       func() time.Time
}

// NewBatchService creates a new BatchService. optimizer may be nil when
// images are never optimized.
func NewBatchService(store repository.DocumentStoreInterface, synth *editpage.Synthesizer, optimizer ImageOptimizerInterface, opts BatchOptions) *BatchService {
	return &BatchService{
		store:     store,
		synth:     synth,
		optimizer: optimizer,
		opts:      opts,
		now:       time.Now,
	}
}

// Ensure BatchService implements BatchServiceInterface
var _ BatchServiceInterface = (*BatchService)(nil)

// Run applies op to every product in order and returns the report. Failures
// are recorded per product and never stop the run; a cancelled context marks
// the remaining products as skipped.
func (s *BatchService) Run(ctx context.Context, products []models.ProductRecord, op Operation) *models.BatchReport {
	report := &models.BatchReport{
		RunID:     uuid.NewString(),
		Operation: op.String(),
		StartedAt: s.now(),
	}
	log.Printf("🔄 Starting %s run %s over %d products", report.Operation, report.RunID, len(products))

	seen := make(map[int]bool, len(products))
	for _, product := range products {
		if ctx.Err() != nil {
			s.record(report, skipped(product, "run cancelled"))
			continue
		}
		if product.ID > 0 && seen[product.ID] {
			s.record(report, skipped(product, fmt.Sprintf("duplicate id %d in this run", product.ID)))
			continue
		}
		seen[product.ID] = true

		var item models.BatchItem
		switch op.Kind {
		case OpSynthesize:
			prepared, warnings := s.prepare(product)
			item = s.synthesizeOne(prepared)
			item.Warnings = append(warnings, item.Warnings...)
		case OpPatch:
			prepared, warnings := s.prepare(product)
			item = s.patchOne(prepared, op.Patches)
			item.Warnings = append(warnings, item.Warnings...)
		case OpRetire:
			item = s.retireOne(product)
		default:
			item = failed(product, fmt.Errorf("unknown operation %q", op.Kind))
		}
		s.record(report, item)
	}

	report.FinishedAt = s.now()
	counts := report.Counts()
	log.Printf("🎉 Run %s completed: %d created, %d updated, %d skipped, %d failed, %d deleted",
		report.RunID, counts[models.OutcomeCreated], counts[models.OutcomeUpdated],
		counts[models.OutcomeSkipped], counts[models.OutcomeFailed], counts[models.OutcomeDeleted])
	return report
}

func (s *BatchService) record(report *models.BatchReport, item models.BatchItem) {
	switch item.Outcome {
	case models.OutcomeFailed:
		log.Printf("❌ Product %d: %s: %s", item.ProductID, item.ErrorKind, item.Error)
	case models.OutcomeSkipped:
		log.Printf("⏭️  Skipping product %d (%s)", item.ProductID, item.Reason)
	default:
		log.Printf("✓ Product %d %s: %s", item.ProductID, strings.ToLower(string(item.Outcome)), item.Filename)
	}
	for _, w := range item.Warnings {
		log.Printf("⚠️  Product %d: %s", item.ProductID, w)
	}
	report.Add(item)
}

func newItem(product models.ProductRecord, outcome models.Outcome) models.BatchItem {
	return models.BatchItem{ProductID: product.ID, Name: product.Name, Outcome: outcome}
}

func skipped(product models.ProductRecord, reason string) models.BatchItem {
	item := newItem(product, models.OutcomeSkipped)
	item.Reason = reason
	return item
}

func failed(product models.ProductRecord, err error) models.BatchItem {
	item := newItem(product, models.OutcomeFailed)
	item.ErrorKind = models.ErrorKind(err)
	item.Error = err.Error()
	return item
}

// prepare gives a product the configured garment default and optimized
// images, so a page written by one operation renders the same under the other
func (s *BatchService) prepare(product models.ProductRecord) (models.ProductRecord, []string) {
	var warnings []string
	if product.GarmentType == "" && s.opts.DefaultGarmentType != "" {
		product.GarmentType = s.opts.DefaultGarmentType
	}
	if s.opts.OptimizeImages && s.optimizer != nil {
		optimized, _, err := s.optimizer.OptimizeProductImages(product)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("images left as is: %v", err))
		} else {
			product = optimized
		}
	}
	return product, warnings
}

func (s *BatchService) synthesizeOne(product models.ProductRecord) models.BatchItem {
	text, err := s.synth.Synthesize(product)
	if err != nil {
		return failed(product, err)
	}

	result, err := s.store.Write(product.ID, utils.NormalizeName(product.Name), text)
	if err != nil {
		return failed(product, err)
	}

	var item models.BatchItem
	switch {
	case result.Created:
		item = newItem(product, models.OutcomeCreated)
	case result.Unchanged:
		item = skipped(product, "unchanged")
	default:
		item = newItem(product, models.OutcomeUpdated)
	}
	item.Filename = result.Filename
	for _, replaced := range result.Replaced {
		item.Warnings = append(item.Warnings, "replaced "+replaced)
	}
	return item
}

func (s *BatchService) patchOne(product models.ProductRecord, patches []editpage.SectionPatch) models.BatchItem {
	text, page, err := s.store.Read(product.ID)
	if errors.Is(err, repository.ErrPageNotFound) {
		return skipped(product, "no edit page")
	}
	if err != nil {
		return failed(product, err)
	}

	// all patches apply or the page is left untouched
	var warnings []string
	patched := text
	for _, patch := range patches {
		result, err := editpage.ApplyPatch(patched, patch, product)
		if err != nil {
			item := failed(product, err)
			item.Filename = page.Filename
			item.Warnings = warnings
			return item
		}
		patched = result.Text
		warnings = append(warnings, result.Warnings...)
	}

	filename := utils.EditPageFileName(product.ID, utils.NormalizeName(product.Name))
	if patched == text && filename == page.Filename {
		item := skipped(product, "already up to date")
		item.Filename = page.Filename
		item.Warnings = warnings
		return item
	}

	result, err := s.store.Write(product.ID, utils.NormalizeName(product.Name), patched)
	if err != nil {
		item := failed(product, err)
		item.Filename = page.Filename
		item.Warnings = warnings
		return item
	}
	item := newItem(product, models.OutcomeUpdated)
	item.Filename = result.Filename
	for _, replaced := range result.Replaced {
		warnings = append(warnings, "replaced "+replaced)
	}
	item.Warnings = warnings
	return item
}

func (s *BatchService) retireOne(product models.ProductRecord) models.BatchItem {
	removed, err := s.store.Delete(product.ID)
	if errors.Is(err, repository.ErrPageNotFound) {
		return skipped(product, "no edit page")
	}
	if err != nil {
		return failed(product, err)
	}
	item := newItem(product, models.OutcomeDeleted)
	item.Filename = strings.Join(removed, ", ")
	return item
}
