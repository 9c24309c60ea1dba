package integrity

import (
	"context"
	"errors"

	"vehicle-catalogue/core/storage"
	"vehicle-catalogue/feature/catalogue/source"
	"vehicle-catalogue/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrNoBucket is returned by CheckStructure when data files are not read
// from object storage.
var ErrNoBucket = errors.New("data files are not stored in a bucket")

// Options configures the checked locations.
type Options struct {
	// Client is nil unless data files live in a bucket.
	Client storage.Client
	Bucket string
	Prefix string

	Installation string
	ClientFile   string
}

// Service runs the data source checks.
type Service struct {
	src    source.Source
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(src source.Source, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		src:    src,
		opts:   opts,
		logger: logger,
	}
}

// CheckStructure returns the required file kinds missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.opts.Client == nil {
		return nil, ErrNoBucket
	}
	return checks.CheckStructure(ctx, s.opts.Client, s.opts.Bucket, s.opts.Prefix)
}

// CheckFiles parses every data file of the source.
func (s *Service) CheckFiles(ctx context.Context) (*checks.FilesReport, error) {
	return checks.CheckFiles(ctx, s.src)
}

// CheckInstallation reports the detected game client.
func (s *Service) CheckInstallation() checks.InstallationReport {
	return checks.CheckInstallation(s.opts.Installation, s.opts.ClientFile)
}

// Report is the combined result of all checks. A failed check carries its
// error instead of a result.
type Report struct {
	Structure    *StructureResult           `json:"structure,omitempty"`
	Files        *checks.FilesReport        `json:"files,omitempty"`
	FilesError   string                     `json:"files_error,omitempty"`
	Installation *checks.InstallationReport `json:"installation,omitempty"`
	Healthy      bool                       `json:"healthy"`
}

// StructureResult is the bucket structure part of a Report.
type StructureResult struct {
	Missing []string `json:"missing"`
	Error   string   `json:"error,omitempty"`
}

// CheckAll runs every applicable check.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{Healthy: true}

	if s.opts.Client != nil {
		missing, err := s.CheckStructure(ctx)
		res := &StructureResult{Missing: missing}
		if res.Missing == nil {
			res.Missing = []string{}
		}
		if err != nil {
			res.Error = err.Error()
			report.Healthy = false
			s.logger.Error("Structure check failed", zap.Error(err))
		} else if len(missing) > 0 {
			report.Healthy = false
			s.logger.Warn("Missing data files detected", zap.Strings("missing", missing))
		}
		report.Structure = res
	}

	files, err := s.CheckFiles(ctx)
	if err != nil {
		report.FilesError = err.Error()
		report.Healthy = false
		s.logger.Error("Data file check failed", zap.Error(err))
	} else {
		report.Files = files
		if len(files.Invalid) > 0 || len(files.Skipped) > 0 {
			report.Healthy = false
		}
	}

	if s.opts.Installation != "" {
		inst := s.CheckInstallation()
		report.Installation = &inst
		if !inst.Detected {
			report.Healthy = false
		}
	}

	return report
}
