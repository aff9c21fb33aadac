// Comando ggc: motor del almacén en modo lote. Carga estado (importación o snapshot),
// aplica un guion de operaciones, imprime listados y opcionalmente guarda y exporta.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/almacen-ggc/internal/application/report"
	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain/repository"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/importer"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/snapshot"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/sqlite"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/xmlexport"
	"github.com/jhoicas/almacen-ggc/pkg/config"
	"github.com/jhoicas/almacen-ggc/pkg/logger"
)

// configName valor de --load/--save sin argumento: usar SNAPSHOT_NAME.
const configName = "@"

type options struct {
	importPath string
	load       string
	save       string
	script     string
	advance    int
	pdfPath    string
	xmlPath    string
	list       bool
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("ggc", pflag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.importPath, "import", "", "archivo de importación (PARTNER/BATCH_S/BATCH_M)")
	fs.StringVar(&o.load, "load", "", "nombre del snapshot a cargar")
	fs.StringVar(&o.save, "save", "", "nombre con el que guardar el snapshot al terminar")
	fs.StringVar(&o.script, "script", "", "archivo con operaciones a aplicar")
	fs.IntVar(&o.advance, "advance", 0, "días a avanzar antes de listar")
	fs.StringVar(&o.pdfPath, "pdf", "", "ruta del reporte PDF")
	fs.StringVar(&o.xmlPath, "xml", "", "ruta del XML exportado")
	fs.BoolVar(&o.list, "list", false, "listar snapshots guardados y salir")
	fs.Lookup("load").NoOptDefVal = configName
	fs.Lookup("save").NoOptDefVal = configName
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.importPath != "" && o.load != "" {
		return nil, errors.New("--import y --load son excluyentes")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	}).WithStr("run", uuid.NewString())
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Snapshot.Backend).
		Msg("iniciando")

	if err := run(context.Background(), cfg, opts, log, os.Stdout); err != nil {
		log.Error().Err(err).Msg("ejecución fallida")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts *options, log *logger.Logger, out io.Writer) error {
	if opts.load == configName {
		opts.load = cfg.Snapshot.Name
	}
	if opts.save == configName {
		opts.save = cfg.Snapshot.Name
	}
	needsRepo := opts.load != "" || opts.save != "" || opts.list
	var repo repository.SnapshotRepository
	if needsRepo {
		r, closeRepo, err := openRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeRepo()
		repo = r
	}

	if opts.list {
		infos, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(out, "%s|%s|%d|%s\n", info.Name, info.ID, info.Date, info.SavedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	}

	uc := warehouse.NewWarehouseUseCase(log)
	switch {
	case opts.importPath != "":
		if err := importer.ImportFile(opts.importPath, uc); err != nil {
			return fmt.Errorf("importar %s: %w", opts.importPath, err)
		}
	case opts.load != "":
		snap, err := repo.Load(ctx, opts.load)
		if err != nil {
			return err
		}
		if err := uc.Restore(snap); err != nil {
			return err
		}
	}

	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("abrir guion: %w", err)
		}
		err = runScript(f, uc, out)
		f.Close()
		if err != nil {
			return err
		}
	}

	if opts.advance > 0 {
		if err := uc.AdvanceDate(opts.advance); err != nil {
			return err
		}
	}

	rep, err := report.Build(uc)
	if err != nil {
		return err
	}
	printReport(out, rep)

	var digest string
	if opts.xmlPath != "" || opts.pdfPath != "" {
		data, err := xmlexport.Export(rep)
		if err != nil {
			return err
		}
		if digest, err = xmlexport.Digest(data); err != nil {
			return err
		}
		if opts.xmlPath != "" {
			if err := os.WriteFile(opts.xmlPath, data, 0o644); err != nil {
				return fmt.Errorf("escribir XML: %w", err)
			}
			log.Info().Str("path", opts.xmlPath).Str("digest", digest).Msg("XML exportado")
		}
	}
	if opts.pdfPath != "" {
		doc, err := pdf.NewMarotoReportGenerator(cfg.App.Name).GenerateStockReport(ctx, rep, digest)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfPath, doc, 0o644); err != nil {
			return fmt.Errorf("escribir PDF: %w", err)
		}
		log.Info().Str("path", opts.pdfPath).Msg("PDF generado")
	}

	if opts.save != "" {
		if err := repo.Save(ctx, opts.save, uc.Snapshot()); err != nil {
			return err
		}
		log.Info().Str("name", opts.save).Msg("snapshot guardado")
	}
	return nil
}

// openRepository elige el backend de snapshots según la configuración.
func openRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, func(), error) {
	switch cfg.Snapshot.Backend {
	case config.BackendSQLite:
		r, err := sqlite.Open(cfg.Snapshot.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		r := postgres.NewSnapshotRepository(pool)
		if err := r.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return r, pool.Close, nil
	default:
		r, err := snapshot.NewFileStore(cfg.Snapshot.Path)
		if err != nil {
			return nil, nil, err
		}
		return r, func() {}, nil
	}
}
