package templatize

import (
	"context"
	"fmt"
)

// Builder turns a source résumé package into a template package
type Builder struct {
	config *Config
	plan   *Plan
	logger *Logger
}

// Result describes a finished build
type Result struct {
	InputPath  string
	OutputPath string
	// CustomPropertiesRemoved is true when the manifest entry for
	// docProps/custom.xml was found and removed
	CustomPropertiesRemoved bool
	Stats                   ApplyStats
	Report                  *ValidationReport
}

// NewBuilder creates a builder. Unset config fields take their defaults. A
// nil plan means the plan file named by the config, or DefaultPlan when
// there is none.
func NewBuilder(config *Config, plan *Plan) *Builder {
	return &Builder{
		config: NewConfigWithDefaults(config),
		plan:   plan,
		logger: GetLogger(),
	}
}

// WithLogger sets the logger used for this builder's output
func (b *Builder) WithLogger(logger *Logger) *Builder {
	b.logger = logger
	return b
}

// Config returns the effective configuration
func (b *Builder) Config() *Config {
	return b.config
}

func (b *Builder) resolvePlan() (*Plan, error) {
	if b.plan != nil {
		return b.plan, nil
	}
	if b.config.PlanFile != "" {
		plan, err := LoadPlanFile(b.config.PlanFile)
		if err != nil {
			return nil, err
		}
		b.logger.WithField("plan", b.config.PlanFile).Debug("Loaded plan file")
		return plan, nil
	}
	return DefaultPlan(), nil
}

// Build reads the input package, rewrites it and writes the template to the
// output path. Nothing is written when any stage fails.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := b.logger.WithFields(Fields{"input": b.config.InputPath, "output": b.config.OutputPath})
	logger.Debug("Reading package")

	pkg, err := ReadPackageFile(b.config.InputPath)
	if err != nil {
		return nil, err
	}

	result, err := b.Transform(ctx, pkg)
	if err != nil {
		return nil, NewDocumentError("transform", b.config.InputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := pkg.WriteFile(b.config.OutputPath); err != nil {
		return nil, err
	}

	result.InputPath = b.config.InputPath
	result.OutputPath = b.config.OutputPath

	logger.WithFields(Fields{
		"paragraphs": result.Stats.Paragraphs,
		"inserted":   result.Stats.Inserted,
		"removed":    result.Stats.Removed,
		"skipped":    result.Stats.Skipped,
	}).Info("Template built")

	return result, nil
}

// Transform applies the build to an in-memory package: strips the custom
// properties part, rewrites the main document with the plan and checks the
// resulting tags. The edits are made on a copy and replace the contents of
// pkg only when every stage succeeded; on error pkg is unchanged.
func (b *Builder) Transform(ctx context.Context, pkg *Package) (*Result, error) {
	plan, err := b.resolvePlan()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	work := pkg.Clone()

	removed, err := StripCustomProperties(work)
	if err != nil {
		return nil, err
	}
	result.CustomPropertiesRemoved = removed

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, body, err := parseBody(work)
	if err != nil {
		return nil, err
	}

	stats, err := ApplyPlan(body, plan, ApplyOptions{Lenient: b.config.Lenient, Logger: b.logger})
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := ValidateTemplate(body)
	result.Report = report
	if !report.Valid() {
		if !b.config.Lenient {
			return nil, report.Err()
		}
		for _, issue := range report.Issues {
			b.logger.WithFields(Fields{"code": issue.Code, "paragraph": issue.Paragraph}).Warn("%s", issue.Message)
		}
	}

	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", DocumentPartName, err)
	}
	work.Set(DocumentPartName, content)

	*pkg = *work
	return result, nil
}
