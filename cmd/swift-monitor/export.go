package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/filter"
	"github.com/bigkaa/swift-monitor/internal/repository"
	"github.com/bigkaa/swift-monitor/internal/service"
)

// exportFlags — параметры выгрузки из командной строки.
type exportFlags struct {
	format     string
	output     string
	dateFrom   string
	dateTo     string
	status     string
	formType   string
	search     string
	errorsOnly bool
}

// params возвращает фильтры в виде сырых параметров, как в HTTP-запросе.
func (f exportFlags) params() filter.Map {
	m := filter.Map{
		filter.ParamDateFrom: f.dateFrom,
		filter.ParamDateTo:   f.dateTo,
		filter.ParamStatus:   f.status,
		filter.ParamType:     f.formType,
		filter.ParamSearch:   f.search,
	}
	if f.errorsOnly {
		m[filter.ParamErrorsOnly] = "true"
	}
	return m
}

// exportTimeout ограничивает выгрузку из командной строки.
const exportTimeout = 5 * time.Minute

func exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузить журнал транзакций в файл (не более 10000 строк)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			logger := commonRun(cfg)
			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()

			store, err := openStore(ctx, cfg, logger, false)
			if err != nil {
				return err
			}
			defer store.close()

			svc := service.NewExportService(repository.NewExportRepository(store.gateway), logger)
			f := filter.Normalize(flags.params())

			preview, err := svc.Preview(ctx, f)
			if err != nil {
				return err
			}
			if preview.HasMore {
				logger.Warn("Выгрузка будет обрезана",
					slog.Int64("total", preview.TotalRecords),
					slog.Int64("will_export", preview.WillExport),
				)
			}

			file, err := svc.Export(ctx, f, flags.format)
			if err != nil {
				return err
			}

			path := flags.output
			if path == "" {
				path = file.Filename
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, file.Filename)
			}
			if err := writeFileAtomic(path, file); err != nil {
				return fmt.Errorf("ошибка записи %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d строк\n", path, file.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", model.ExportFormatXLSX, "формат: xlsx или csv")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "файл или каталог назначения (по умолчанию имя с меткой времени)")
	cmd.Flags().StringVar(&flags.dateFrom, "date-from", "", "начало диапазона, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.dateTo, "date-to", "", "конец диапазона включительно, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.status, "status", "", "состояние транзакции или статус сообщения")
	cmd.Flags().StringVar(&flags.formType, "type", "", "подстрока кода типа формы")
	cmd.Flags().StringVar(&flags.search, "search", "", "подстрока для поиска")
	cmd.Flags().BoolVar(&flags.errorsOnly, "errors-only", false, "только транзакции с ошибкой")

	return cmd
}

// writeFileAtomic пишет выгрузку во временный файл того же каталога и
// переименовывает его в path; прерванная запись не оставляет частичного файла.
func writeFileAtomic(path string, file *service.ExportFile) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = file.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
