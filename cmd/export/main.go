package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/harborcommerce/backoffice-backend/internal/export"
	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/config"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "backoffice-export"})

	_ = godotenv.Load()

	target := flag.String("target", "all", "export target: orders|customers|all")
	dir := flag.String("dir", "", "output directory (defaults to BACKOFFICE_EXPORT_DIR)")
	first := flag.Int("first", 0, "records to fetch (defaults to BACKOFFICE_UPSTREAM_PAGE_SIZE)")
	flag.Parse()

	switch *target {
	case "orders", "customers", "all":
	default:
		fmt.Fprintln(os.Stderr, "unknown -target value:", *target)
		os.Exit(1)
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "backoffice-export",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	outDir := *dir
	if outDir == "" {
		outDir = cfg.Export.Dir
	}
	pageSize := cfg.Upstream.PageSize
	if *first > 0 {
		pageSize = *first
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"target": *target,
		"dir":    outDir,
		"first":  pageSize,
	})

	client, err := commerce.NewClient(cfg.Upstream, logg, nil)
	requireResource(logg, "commerce client", err)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logg.Error(ctx, "failed to create output directory", err)
		os.Exit(1)
	}

	var failures error
	if *target == "orders" || *target == "all" {
		path, err := exportOrders(ctx, client, pageSize, outDir)
		if err != nil {
			failures = multierr.Append(failures, err)
			logg.Error(ctx, "orders export failed", err)
		} else {
			fmt.Println("wrote", path)
		}
	}
	if *target == "customers" || *target == "all" {
		path, err := exportCustomers(ctx, client, pageSize, outDir)
		if err != nil {
			failures = multierr.Append(failures, err)
			logg.Error(ctx, "customers export failed", err)
		} else {
			fmt.Println("wrote", path)
		}
	}

	if failures != nil {
		os.Exit(1)
	}
	logg.Info(ctx, "export complete")
}

func exportOrders(ctx context.Context, client *commerce.Client, first int, dir string) (string, error) {
	batch, err := client.ListOrders(ctx, first)
	if err != nil {
		return "", err
	}
	rows := queryengine.FilterAndSortOrders(records.OrdersFromUpstream(batch), queryengine.OrderQuery{
		SortKey:       enums.OrderSortKeyDate,
		SortDirection: enums.SortDirectionDesc,
	})
	return writeCSV(filepath.Join(dir, "orders-"+uuid.NewString()+".csv"), func(f *os.File) error {
		return export.WriteOrders(f, rows)
	})
}

func exportCustomers(ctx context.Context, client *commerce.Client, first int, dir string) (string, error) {
	batch, err := client.ListCustomers(ctx, first)
	if err != nil {
		return "", err
	}
	rows := queryengine.FilterAndSortCustomers(records.CustomersFromUpstream(batch), queryengine.CustomerQuery{
		SortKey:       enums.CustomerSortKeyDate,
		SortDirection: enums.SortDirectionDesc,
	})
	return writeCSV(filepath.Join(dir, "customers-"+uuid.NewString()+".csv"), func(f *os.File) error {
		return export.WriteCustomers(f, rows)
	})
}

func writeCSV(path string, write func(f *os.File) error) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
