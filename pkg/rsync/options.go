package rsync

// Options controls a general transfer
type Options struct {
	Archive bool
	// Compress and Relative are carried for configuration compatibility but
	// are not translated into flags.
	Compress   bool
	Relative   bool
	Delete     bool
	DryRun     bool
	Include    []string
	Exclude    []string
	WorkingDir string // rsync runs from here when set
}

// DefaultOptions returns the options used when nothing is overridden
func DefaultOptions() Options {
	return Options{
		Archive:  true,
		Compress: true,
	}
}

// Overrides holds the subset of options a caller wants to change. Nil
// fields keep whatever they are merged over.
type Overrides struct {
	Archive    *bool    `json:"archive,omitempty"`
	Compress   *bool    `json:"compress,omitempty"`
	Relative   *bool    `json:"relative,omitempty"`
	Delete     *bool    `json:"delete,omitempty"`
	DryRun     *bool    `json:"dry_run,omitempty"`
	Include    []string `json:"include,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
	WorkingDir *string  `json:"working_dir,omitempty"`
}

// Merge returns a copy of o with every field set in ov applied
func (o Options) Merge(ov Overrides) Options {
	merged := o
	if ov.Archive != nil {
		merged.Archive = *ov.Archive
	}
	if ov.Compress != nil {
		merged.Compress = *ov.Compress
	}
	if ov.Relative != nil {
		merged.Relative = *ov.Relative
	}
	if ov.Delete != nil {
		merged.Delete = *ov.Delete
	}
	if ov.DryRun != nil {
		merged.DryRun = *ov.DryRun
	}
	if ov.Include != nil {
		merged.Include = append([]string(nil), ov.Include...)
	}
	if ov.Exclude != nil {
		merged.Exclude = append([]string(nil), ov.Exclude...)
	}
	if ov.WorkingDir != nil {
		merged.WorkingDir = *ov.WorkingDir
	}
	return merged
}

// Merge layers ov on top of o, ov winning field by field
func (o Overrides) Merge(ov Overrides) Overrides {
	merged := o
	if ov.Archive != nil {
		merged.Archive = ov.Archive
	}
	if ov.Compress != nil {
		merged.Compress = ov.Compress
	}
	if ov.Relative != nil {
		merged.Relative = ov.Relative
	}
	if ov.Delete != nil {
		merged.Delete = ov.Delete
	}
	if ov.DryRun != nil {
		merged.DryRun = ov.DryRun
	}
	if ov.Include != nil {
		merged.Include = ov.Include
	}
	if ov.Exclude != nil {
		merged.Exclude = ov.Exclude
	}
	if ov.WorkingDir != nil {
		merged.WorkingDir = ov.WorkingDir
	}
	return merged
}

// Bool returns a pointer to b, for building Overrides inline
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building Overrides inline
func String(s string) *string { return &s }
