package relay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixed feed file names searched for on every poll.
const (
	customerFileName      = "customers.xml"
	productFileName       = "products.xml"
	purchaseOrderFileName = "purchase_orders.xml"
	salesOrderFileName    = "sales_orders.xml"
)

// archiveStampFormat names the per-run subfolder under the processed
// directory: ddMMyyyyHHmmss.
const archiveStampFormat = "02012006150405"

// FileProcessor scans the inbound directory for the four feed files,
// converts each into API request batches and fans the batches out to the
// upload endpoints. A file is archived when at least one of its batches
// was accepted; files whose every batch failed stay in place for the next
// poll.
type FileProcessor struct {
	client    APIClient
	directory string
	processed string
	batchSize int
	logger    *zap.Logger

	now func() time.Time
}

// NewFileProcessor creates a feed file processor.
func NewFileProcessor(cfg config.RelayConfig, client APIClient, logger *zap.Logger) *FileProcessor {
	processed := cfg.ProcessedDir
	if !filepath.IsAbs(processed) {
		processed = filepath.Join(cfg.Directory, processed)
	}
	return &FileProcessor{
		client:    client,
		directory: cfg.Directory,
		processed: processed,
		batchSize: cfg.BatchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Process runs one pass over the four feed files. Per-file failures are
// logged and do not stop the remaining files.
func (p *FileProcessor) Process(ctx context.Context) error {
	if _, err := os.Stat(p.directory); err != nil {
		return fmt.Errorf("feed directory %s is not accessible: %w", p.directory, err)
	}

	archiveDir := filepath.Join(p.processed, p.now().Format(archiveStampFormat))

	p.processFile(ctx, customerFileName, archiveDir, p.processCustomers)
	p.processFile(ctx, productFileName, archiveDir, p.processProducts)
	p.processFile(ctx, purchaseOrderFileName, archiveDir, p.processPurchaseOrders)
	p.processFile(ctx, salesOrderFileName, archiveDir, p.processSalesOrders)

	return nil
}

// processFile runs one feed file through its handler and archives it when
// the handler reports at least one accepted batch.
func (p *FileProcessor) processFile(ctx context.Context, name, archiveDir string, handle func(ctx context.Context, path string) (bool, error)) {
	path := filepath.Join(p.directory, name)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("Feed file is not accessible",
				zap.String("path", path),
				zap.Error(err))
		}
		return
	}

	p.logger.Info("Processing feed file", zap.String("path", path))
	accepted, err := handle(ctx, path)
	if err != nil {
		p.logger.Error("Failed to process feed file",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	if !accepted {
		p.logger.Error("No batch from feed file was accepted, leaving file in place",
			zap.String("path", path))
		return
	}

	if err := p.archiveFile(path, archiveDir); err != nil {
		p.logger.Error("Failed to archive processed feed file",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	p.logger.Info("Feed file processed and archived",
		zap.String("path", path),
		zap.String("archive_dir", archiveDir))
}

func (p *FileProcessor) processCustomers(ctx context.Context, path string) (bool, error) {
	var doc customerFeed
	if err := decodeFeedFile(path, &doc); err != nil {
		return false, err
	}
	if len(doc.Customers) == 0 {
		return false, fmt.Errorf("no customers found in %s", path)
	}
	return dispatchBatches(ctx, toCustomerRequests(doc.Customers), p.batchSize, p.logger, p.client.UploadCustomers), nil
}

func (p *FileProcessor) processProducts(ctx context.Context, path string) (bool, error) {
	var doc productFeed
	if err := decodeFeedFile(path, &doc); err != nil {
		return false, err
	}
	if len(doc.Products) == 0 {
		return false, fmt.Errorf("no products found in %s", path)
	}
	return dispatchBatches(ctx, toProductRequests(doc.Products), p.batchSize, p.logger, p.client.UploadProducts), nil
}

func (p *FileProcessor) processPurchaseOrders(ctx context.Context, path string) (bool, error) {
	var doc purchaseOrderFeed
	if err := decodeFeedFile(path, &doc); err != nil {
		return false, err
	}
	if len(doc.Orders) == 0 {
		return false, fmt.Errorf("no purchase orders found in %s", path)
	}
	requests, err := toPurchaseOrderRequests(doc.Orders)
	if err != nil {
		return false, err
	}
	return dispatchBatches(ctx, requests, p.batchSize, p.logger, p.client.UploadPurchaseOrders), nil
}

func (p *FileProcessor) processSalesOrders(ctx context.Context, path string) (bool, error) {
	var doc salesOrderFeed
	if err := decodeFeedFile(path, &doc); err != nil {
		return false, err
	}
	if len(doc.Orders) == 0 {
		return false, fmt.Errorf("no sales orders found in %s", path)
	}
	requests, err := toSalesOrderRequests(doc.Orders)
	if err != nil {
		return false, err
	}
	return dispatchBatches(ctx, requests, p.batchSize, p.logger, p.client.UploadSalesOrders), nil
}

// archiveFile moves a handled feed file into the run's archive folder,
// overwriting a same-named file from an earlier run of the same second.
func (p *FileProcessor) archiveFile(path, archiveDir string) error {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory %s: %w", archiveDir, err)
	}
	target := filepath.Join(archiveDir, filepath.Base(path))
	if _, err := os.Stat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to replace archived file %s: %w", target, err)
		}
	}
	return os.Rename(path, target)
}

// chunk splits items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return [][]T{items}
	}
	var batches [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

// dispatchBatches uploads every batch concurrently and waits for all of
// them. It reports whether at least one batch was accepted; individual
// batch failures are logged, not propagated, so sibling batches always
// run to completion.
func dispatchBatches[T any](ctx context.Context, items []T, size int, logger *zap.Logger, upload func(context.Context, []T) (shared.Status, error)) bool {
	g, ctx := errgroup.WithContext(ctx)
	var accepted atomic.Bool

	for i, batch := range chunk(items, size) {
		i, batch := i, batch
		g.Go(func() error {
			status, err := upload(ctx, batch)
			if err != nil {
				logger.Error("Batch upload failed",
					zap.Int("batch", i),
					zap.Int("records", len(batch)),
					zap.Error(err))
				return nil
			}
			if !status.Success {
				logger.Error("Batch upload rejected",
					zap.Int("batch", i),
					zap.Int("records", len(batch)),
					zap.String("message", status.Message))
				return nil
			}
			accepted.Store(true)
			return nil
		})
	}
	_ = g.Wait()

	return accepted.Load()
}
