package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/hydrant/api"
	"github.com/five82/hydrant/hydrus"
	"github.com/five82/hydrant/internal/app"
)

// pages command
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Browse the client's pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		poll, _ := cmd.Flags().GetDuration("poll")
		prefsPath, _ := cmd.Flags().GetString("prefs")
		return app.Run(cmd.Context(), app.Options{
			ConfigPath: configPath,
			PrefsPath:  prefsPath,
			PollEvery:  poll,
		})
	},
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show API and client versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		v, err := h.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s %d\n", labelStyle.Render("API version:   "), v.Version)
		fmt.Printf("%s %d\n", labelStyle.Render("hydrus version:"), v.HydrusVersion)
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search TAG...",
	Short: "List hashes of files matching every tag",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortName, _ := cmd.Flags().GetString("sort")
		asc, _ := cmd.Flags().GetBool("asc")

		var opts []hydrus.SearchOption
		if sortName != "" {
			sortType, err := parseSortType(sortName)
			if err != nil {
				return err
			}
			opts = append(opts, hydrus.SortBy(sortType, asc))
		}

		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		files, err := h.Search(cmd.Context(), args, opts...)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No files found.")
			return nil
		}
		for _, f := range files {
			fmt.Println(f.ID.Hash)
		}
		return nil
	},
}

// tags command
var tagsCmd = &cobra.Command{
	Use:   "tags HASH",
	Short: "Show a file's current tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		tags, err := h.File(args[0]).Tags(cmd.Context())
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags.")
			return nil
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add HASH TAG...",
	Short: "Add tags to a file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return modifyTags(cmd, args, api.TagActionAddToLocal)
	},
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove HASH TAG...",
	Short: "Remove tags from a file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return modifyTags(cmd, args, api.TagActionDeleteFromLocal)
	},
}

func modifyTags(cmd *cobra.Command, args []string, action api.TagAction) error {
	service, _ := cmd.Flags().GetString("service")

	h, logger, err := connect()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tags := make([]hydrus.Tag, 0, len(args)-1)
	for _, raw := range args[1:] {
		tags = append(tags, hydrus.ParseTag(raw))
	}
	tags, err = h.CleanTags(cmd.Context(), tags)
	if err != nil {
		return err
	}
	if err := h.File(args[0]).ModifyTags(cmd.Context(), hydrus.ServiceKey(service), action, tags); err != nil {
		return err
	}
	fmt.Printf("%s %d tag(s)\n", capitalize(action.String()), len(tags))
	return nil
}

// url command
var urlCmd = &cobra.Command{
	Use:   "url URL",
	Short: "Show how hydrus classifies a URL and the files it knows for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doImport, _ := cmd.Flags().GetBool("import")
		page, _ := cmd.Flags().GetString("page")
		showPage, _ := cmd.Flags().GetBool("show-page")
		rawTags, _ := cmd.Flags().GetStringSlice("tag")

		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		u, err := h.URL(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if doImport {
			b := u.Import().ShowPage(showPage)
			if page != "" {
				b.Page(hydrus.PageByName(page))
			}
			for _, raw := range rawTags {
				b.AddAdditionalTag(hydrus.MyTags, hydrus.ParseTag(raw))
			}
			if u, err = b.Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info("url queued", zap.String("url", u.Normalised))
			fmt.Printf("Queued %s\n", u.Normalised)
		}

		fmt.Printf("%s %s\n", labelStyle.Render("URL: "), u.Normalised)
		fmt.Printf("%s %s\n", labelStyle.Render("Type:"), u.Type)
		if u.MatchName != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("Match:"), u.MatchName)
		}

		files, err := u.Files(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("%s  %s\n", f.ID.Hash, mutedStyle.Render(f.Status.String()))
		}
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Import files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upload, _ := cmd.Flags().GetBool("upload")

		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		failed := 0
		for _, path := range args {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			source, err := importSource(absPath, upload)
			if err != nil {
				return err
			}

			f, err := h.Import().File(source).Run(cmd.Context())
			if err != nil {
				failed++
				logger.Warn("import failed", zap.String("path", absPath), zap.Error(err))
				fmt.Printf("%s  %s\n", mutedStyle.Render("failed"), absPath)
				continue
			}
			fmt.Printf("%s  %s  %s\n", f.ID.Hash, mutedStyle.Render(f.Status.String()), absPath)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d import(s) failed", failed, len(args))
		}
		return nil
	},
}

func importSource(path string, upload bool) (hydrus.FileImport, error) {
	if !upload {
		return hydrus.FileImportPath(path), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return hydrus.FileImport{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return hydrus.FileImportReader(file)
}

// set-time command
var setTimeCmd = &cobra.Command{
	Use:   "set-time HASH...",
	Short: "Edit a timestamp on files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		domain, _ := cmd.Flags().GetString("domain")
		service, _ := cmd.Flags().GetString("service")
		canvas, _ := cmd.Flags().GetUint64("canvas")
		at, _ := cmd.Flags().GetString("at")
		ms, _ := cmd.Flags().GetString("ms")
		clearTime, _ := cmd.Flags().GetBool("clear")

		b, err := timeBuilder(kind, domain, service, canvas)
		if err != nil {
			return err
		}
		if err := applyTimestamp(b, at, ms, clearTime, time.Now()); err != nil {
			return err
		}
		req, err := b.AddHashes(args).Build()
		if err != nil {
			return err
		}

		h, logger, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if err := h.Client().SetTime(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Printf("Set %s on %d file(s)\n", req.TimestampType(), len(args))
		return nil
	},
}

var timeKinds = map[string]func(domain, service string, canvas uint64) (*api.SetTimeRequestBuilder, error){
	"domain": func(domain, _ string, _ uint64) (*api.SetTimeRequestBuilder, error) {
		if domain == "" {
			return nil, fmt.Errorf("--domain is required for --type domain")
		}
		return api.SetWebDomainTime(domain), nil
	},
	"modified": func(string, string, uint64) (*api.SetTimeRequestBuilder, error) {
		return api.SetDiskTime(), nil
	},
	"imported": dbTimeKind(api.DbFileImportedTime),
	"deleted":  dbTimeKind(api.DbFileDeletedTime),
	"original": dbTimeKind(api.DbFileOriginallyImportedTime),
	"archived": func(string, string, uint64) (*api.SetTimeRequestBuilder, error) {
		return api.SetArchivedTime(), nil
	},
	"viewed": func(_, _ string, canvas uint64) (*api.SetTimeRequestBuilder, error) {
		return api.SetLastViewedTime(canvas), nil
	},
}

func dbTimeKind(kind api.DbTimeRequestType) func(string, string, uint64) (*api.SetTimeRequestBuilder, error) {
	return func(_, service string, _ uint64) (*api.SetTimeRequestBuilder, error) {
		if service == "" {
			return nil, fmt.Errorf("--service is required for %s time", kind)
		}
		return api.SetDbTime(kind, service), nil
	}
}

func timeBuilder(kind, domain, service string, canvas uint64) (*api.SetTimeRequestBuilder, error) {
	newBuilder, ok := timeKinds[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("unknown timestamp type %q (want %s)", kind, timeKindNames())
	}
	return newBuilder(domain, service, canvas)
}

func timeKindNames() string {
	return strings.Join(slices.Sorted(maps.Keys(timeKinds)), ", ")
}

// applyTimestamp sets the builder's time from at (RFC 3339) or ms, falling back
// to now when neither is given.
func applyTimestamp(b *api.SetTimeRequestBuilder, at, ms string, clearTime bool, now time.Time) error {
	set := 0
	for _, given := range []bool{at != "", ms != "", clearTime} {
		if given {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("--at, --ms and --clear are mutually exclusive")
	}

	switch {
	case clearTime:
		b.ClearTimestamp()
	case ms != "":
		if _, err := strconv.ParseInt(ms, 10, 64); err != nil {
			return fmt.Errorf("invalid --ms %q: %w", ms, err)
		}
		b.SetTimestamp(ms)
	case at != "":
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", at, err)
		}
		b.SetTime(t)
	default:
		b.SetTime(now)
	}
	return nil
}

var sortTypes = map[string]api.FileSortType{
	"size":       api.SortFileSize,
	"duration":   api.SortDuration,
	"imported":   api.SortImportTime,
	"filetype":   api.SortFileType,
	"random":     api.SortRandom,
	"width":      api.SortWidth,
	"height":     api.SortHeight,
	"ratio":      api.SortRatio,
	"pixels":     api.SortNumberOfPixels,
	"tags":       api.SortNumberOfTags,
	"views":      api.SortNumberOfMediaViews,
	"viewtime":   api.SortTotalMediaViewtime,
	"bitrate":    api.SortApproxBitrate,
	"audio":      api.SortHasAudio,
	"modified":   api.SortModifiedTime,
	"framerate":  api.SortFramerate,
	"frames":     api.SortNumberOfFrames,
	"lastviewed": api.SortLastViewedTime,
	"archived":   api.SortArchiveTimestamp,
	"hash":       api.SortHashHex,
}

func parseSortType(name string) (api.FileSortType, error) {
	sortType, ok := sortTypes[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown sort %q (want %s)", name, sortNames())
	}
	return sortType, nil
}

func sortNames() string {
	return strings.Join(slices.Sorted(maps.Keys(sortTypes)), ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
