package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/kilib/pkg/config"
	"github.com/arthur-debert/kilib/pkg/errors"
	"github.com/arthur-debert/kilib/pkg/importer"
	"github.com/arthur-debert/kilib/pkg/kipaths"
	"github.com/arthur-debert/kilib/pkg/libtable"
	"github.com/arthur-debert/kilib/pkg/logging"
	"github.com/arthur-debert/kilib/pkg/output/styles"
	"github.com/arthur-debert/kilib/pkg/symlib"
)

var (
	importLibrary    string
	importType       string
	importOnConflict string

	libsType   string
	libsFormat string
)

func init() {
	importCmd.Flags().StringVarP(&importLibrary, "library", "l", "", "Target library name (required)")
	importCmd.Flags().StringVarP(&importType, "type", "t", "", "Library type: symbol, footprint or model (default: derived from the file extension)")
	importCmd.Flags().StringVar(&importOnConflict, "on-conflict", "", "Conflict policy for symbol merges: reject or overwrite (default: from configuration)")
	_ = importCmd.MarkFlagRequired("library")

	libsCmd.Flags().StringVarP(&libsType, "type", "t", "", "Only list libraries of this type: symbol, footprint or model")
	libsCmd.Flags().StringVarP(&libsFormat, "format", "f", "text", "Output format: text or yaml")
}

// newPaths builds path discovery from the loaded configuration.
func newPaths(cfg *config.Config) (kipaths.Paths, error) {
	return kipaths.New(kipaths.Options{
		Version:      cfg.Kicad.Version,
		PrefsDir:     cfg.Kicad.PrefsDir,
		SymbolDir:    cfg.Kicad.SymbolDir,
		FootprintDir: cfg.Kicad.FootprintDir,
		ModelDir:     cfg.Kicad.ModelDir,
	})
}

// libraryTypeForFile derives the library type from a source file extension.
func libraryTypeForFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case importer.ExtSymbolLib:
		return importer.TypeSymbol, nil
	case importer.ExtFootprint:
		return importer.TypeFootprint, nil
	case importer.ExtStep, importer.ExtWRL:
		return importer.TypeModel, nil
	default:
		return "", errors.Newf(errors.ErrUnsupported,
			"unsupported file type %q", filepath.Ext(path))
	}
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an asset file into a KiCad library",
	Long:  importLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.import")
		source := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		paths, err := newPaths(cfg)
		if err != nil {
			return err
		}

		libraryType := importType
		if libraryType == "" {
			libraryType, err = libraryTypeForFile(source)
			if err != nil {
				return err
			}
		}

		policySpelling := importOnConflict
		if policySpelling == "" {
			policySpelling = cfg.Import.OnConflict
		}
		policy, err := symlib.ParsePolicy(policySpelling)
		if err != nil {
			return err
		}

		cache := importer.NewCache(paths)
		cache.Refresh()

		target, err := cache.Find(libraryType, importLibrary)
		if err != nil {
			if names := libraryNames(cache.ForType(libraryType)); len(names) > 0 {
				return errors.Wrapf(err, errors.ErrNotFound,
					"available %s libraries: %s", libraryType, strings.Join(names, ", "))
			}
			return err
		}

		logger.Info().
			Str("source", source).
			Str("library", importLibrary).
			Str("type", libraryType).
			Str("policy", policy.String()).
			Msg("Starting import")

		result, err := importer.New(paths).Import(source, target, policy)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), styles.Render(styles.Success, result.Message))
		return nil
	},
}

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "List the libraries known to KiCad",
	Long:  libsLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		paths, err := newPaths(cfg)
		if err != nil {
			return err
		}

		cache := importer.NewCache(paths)
		cache.Refresh()

		types := []string{importer.TypeSymbol, importer.TypeFootprint, importer.TypeModel}
		if libsType != "" {
			types = []string{libsType}
		}

		if libsFormat == "yaml" {
			listing := make(map[string][]libtable.Record, len(types))
			for _, t := range types {
				listing[t] = cache.ForType(t)
			}
			out, err := yaml.Marshal(listing)
			if err != nil {
				return errors.Wrap(err, errors.ErrUnknown, "failed to render library listing")
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		}

		for _, t := range types {
			records := cache.ForType(t)
			fmt.Fprintln(cmd.OutOrStdout(), styles.Render(styles.Header, t+" libraries"))
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Render(styles.Muted, "  (none)"))
				continue
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n",
					styles.Render(styles.LibraryName, record.Name()), record.URI())
			}
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <uri>",
	Short: "Resolve a library URI to an absolute path",
	Long:  resolveLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		paths, err := newPaths(cfg)
		if err != nil {
			return err
		}

		resolved, err := kipaths.Resolve(args[0], paths.PlaceholderRoots())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resolved)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  configLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := config.Render(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func libraryNames(records []libtable.Record) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name())
	}
	return names
}
