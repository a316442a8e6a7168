package config

const (
	defaultInputDir         = "./input"
	defaultOutputDir        = "./runs"
	defaultLogDir           = "~/.local/share/posreport/logs"
	defaultTimezone         = "Asia/Tokyo"
	defaultCutoffHour       = 6
	defaultDaypartSplitHour = 16
	defaultHourBucketHours  = 1
	defaultHeaderMarker     = "伝票番号"
	defaultMetadataMaxLines = 10
	defaultStatusColumn     = "order_status"
	defaultSignColumn       = "sign"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Store: Store{
			Name:             "store",
			Timezone:         defaultTimezone,
			CutoffHour:       defaultCutoffHour,
			DaypartSplitHour: defaultDaypartSplitHour,
			HourBucketHours:  defaultHourBucketHours,
		},
		Ingest: Ingest{
			EncodingProbeOrder:  []string{"shift_jis", "utf-8"},
			HeaderMarker:        defaultHeaderMarker,
			HeaderOffset:        -1,
			MetadataMaxLines:    defaultMetadataMaxLines,
			ExclusionSubstrings: []string{"output_", "merged", "tickets"},
			StatusColumn:        defaultStatusColumn,
			CancelValues:        []string{"取消", "void", "cancel"},
			SignColumn:          defaultSignColumn,
		},
		Reports: Reports{
			Charts: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
