package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"docvert/internal/config"
	"docvert/internal/domain"
	"docvert/internal/extract"
	"docvert/internal/port"
	"docvert/internal/reader/docxreader"
)

// UploadInput is the DTO for in-memory conversion of an uploaded document.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ConvertService defines the document conversion contract.
type ConvertService interface {
	// ConvertParagraphs assembles a ConversionResult from an already
	// extracted paragraph sequence. source becomes metadata.source_file.
	ConvertParagraphs(source string, paras []string) *domain.ConversionResult

	// ConvertUpload validates and converts an uploaded .docx without
	// touching disk.
	ConvertUpload(ctx context.Context, input UploadInput) (*domain.ConversionResult, error)

	// ConvertFile reads inputPath, converts it, and writes the JSON
	// artifact to outputPath. No partial artifact is written on error.
	ConvertFile(ctx context.Context, inputPath, outputPath string) (*domain.ConversionResult, error)

	// ConvertFolder converts every .docx in inputDir, writing one JSON
	// artifact per input into outputDir. Per-file failures are recorded
	// in the result, never returned as errors.
	ConvertFolder(ctx context.Context, inputDir, outputDir string) (*domain.BatchResult, error)

	// MarshalResult serializes a ConversionResult the same way
	// ConvertFile does, for callers that stream the artifact instead
	// of writing it.
	MarshalResult(res *domain.ConversionResult) ([]byte, error)
}

type convertService struct {
	reader  port.ParagraphReader
	archive port.ObjectStorage
	cfg     *config.Config
	now     func() time.Time
}

// NewConvertService creates a new ConvertService implementation.
// archive may be nil when artifact archiving is disabled. now may be
// nil, in which case time.Now is used; tests inject a frozen clock.
func NewConvertService(
	reader port.ParagraphReader,
	archive port.ObjectStorage,
	cfg *config.Config,
	now func() time.Time,
) ConvertService {
	if now == nil {
		now = time.Now
	}
	return &convertService{
		reader:  reader,
		archive: archive,
		cfg:     cfg,
		now:     now,
	}
}

func (s *convertService) ConvertParagraphs(source string, paras []string) *domain.ConversionResult {
	res := extract.Paragraphs(paras)

	return &domain.ConversionResult{
		Metadata: domain.Metadata{
			SourceFile:        source,
			ConvertedAt:       s.now().Format(time.RFC3339),
			TotalParagraphs:   res.TotalParagraphs,
			ContentParagraphs: res.ContentParagraphs,
			FileType:          string(domain.FileTypeDocx),
		},
		Content:  res.Content,
		FreeText: res.FreeText,
	}
}

// zipMagic is the ZIP local-file header every .docx starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

func (s *convertService) ConvertUpload(ctx context.Context, input UploadInput) (*domain.ConversionResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	if input.Header.Size > s.cfg.Convert.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check before handing the stream to the archive reader.
	magic := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(input.File, magic); err != nil || !bytes.Equal(magic, zipMagic) {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking upload: %w", err)
	}

	paras, err := s.reader.ReadParagraphsFrom(ctx, input.File, input.Header.Size, input.Header.Filename)
	if err != nil {
		return nil, err
	}

	result := s.ConvertParagraphs(input.Header.Filename, paras)
	s.archiveResult(ctx, result)
	return result, nil
}

func (s *convertService) ConvertFile(ctx context.Context, inputPath, outputPath string) (*domain.ConversionResult, error) {
	if docxreader.IsLockFile(inputPath) {
		return nil, &domain.ReadError{Path: inputPath, Err: fmt.Errorf("word lock file")}
	}

	paras, err := s.reader.ReadParagraphs(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	result := s.ConvertParagraphs(filepath.Base(inputPath), paras)

	// Marshal fully before creating the output file so a marshaling
	// failure never leaves a partial artifact behind.
	data, err := s.MarshalResult(result)
	if err != nil {
		return nil, &domain.WriteError{Path: outputPath, Err: err}
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, &domain.WriteError{Path: outputPath, Err: err}
	}

	s.archiveResult(ctx, result)
	return result, nil
}

func (s *convertService) MarshalResult(res *domain.ConversionResult) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.cfg.Convert.Indent > 0 {
		data, err = json.MarshalIndent(res, "", strings.Repeat(" ", s.cfg.Convert.Indent))
	} else {
		data, err = json.Marshal(res)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return append(data, '\n'), nil
}

// archiveResult mirrors the JSON artifact to object storage when
// archiving is enabled. Failures are logged and never fail the
// conversion.
func (s *convertService) archiveResult(ctx context.Context, res *domain.ConversionResult) {
	if s.archive == nil || !s.cfg.Archive.Enabled {
		return
	}

	data, err := s.MarshalResult(res)
	if err != nil {
		log.Printf("convertService: archive marshal for %s: %v", res.Metadata.SourceFile, err)
		return
	}

	name := strings.TrimSuffix(res.Metadata.SourceFile, filepath.Ext(res.Metadata.SourceFile))
	key := fmt.Sprintf("converted/%s/%s%s", s.now().UTC().Format("2006-01-02"), name, domain.OutputExt)

	_, err = s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Archive.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("convertService: archive upload %s: %v", key, err)
		return
	}
	log.Printf("convertService: archived %s", key)
}

// batchJob is one file scheduled for conversion within a folder batch.
// slot is the file's index in the outcomes slice, fixed at enumeration
// time so the report reads in scan order.
type batchJob struct {
	slot   int
	input  string
	output string
}

func (s *convertService) ConvertFolder(ctx context.Context, inputDir, outputDir string) (*domain.BatchResult, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, &domain.DirectoryError{Path: inputDir, Op: "read", Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.DirectoryError{Path: inputDir, Op: "read", Err: fmt.Errorf("not a directory")}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &domain.DirectoryError{Path: outputDir, Op: "create", Err: err}
	}

	batch := &domain.BatchResult{
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: s.now(),
	}

	outcomes, jobs, err := s.enumerate(inputDir, outputDir, batch)
	if err != nil {
		return nil, err
	}

	s.runJobs(ctx, jobs, outcomes)

	for _, o := range outcomes {
		switch {
		case o.Skipped:
			batch.Stats.Skipped++
		case o.Err != "":
			batch.Stats.Failed++
		default:
			batch.Stats.Succeeded++
		}
	}
	batch.Files = outcomes

	log.Printf("convertService: folder %s: %d scanned, %d matched, %d succeeded, %d failed, %d skipped",
		inputDir, batch.Stats.Scanned, batch.Stats.Matched,
		batch.Stats.Succeeded, batch.Stats.Failed, batch.Stats.Skipped)
	return batch, nil
}

// enumerate collects the conversion jobs for a folder. Every retained
// file, skipped lock files and walk errors included, gets an outcome
// slot in scan order; workers fill the job slots in place.
func (s *convertService) enumerate(inputDir, outputDir string, batch *domain.BatchResult) ([]domain.FileOutcome, []batchJob, error) {
	var (
		outcomes []domain.FileOutcome
		jobs     []batchJob
	)

	add := func(path, relDir string) {
		batch.Stats.Scanned++
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return
		}
		batch.Stats.Matched++

		if docxreader.IsLockFile(path) {
			outcomes = append(outcomes, domain.FileOutcome{Input: path, Skipped: true})
			return
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		jobs = append(jobs, batchJob{
			slot:   len(outcomes),
			input:  path,
			output: filepath.Join(outputDir, relDir, stem+domain.OutputExt),
		})
		outcomes = append(outcomes, domain.FileOutcome{})
	}

	if !s.cfg.Convert.Recursive {
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			return nil, nil, &domain.DirectoryError{Path: inputDir, Op: "read", Err: err}
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			add(filepath.Join(inputDir, e.Name()), "")
		}
		return outcomes, jobs, nil
	}

	err := filepath.WalkDir(inputDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			batch.Stats.Scanned++
			outcomes = append(outcomes, domain.FileOutcome{Input: path, Err: walkErr.Error()})
			return nil // keep walking
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(inputDir, filepath.Dir(path))
		if relErr != nil {
			rel = ""
		}
		add(path, rel)
		return nil
	})
	if err != nil {
		return nil, nil, &domain.DirectoryError{Path: inputDir, Op: "walk", Err: err}
	}
	return outcomes, jobs, nil
}

// runJobs converts the enumerated files, fanning out over a semaphore
// when concurrency > 1. Cancellation is checked after acquiring a
// worker slot, so a canceled context stops issuing new conversions
// while in-flight ones run to completion.
func (s *convertService) runJobs(ctx context.Context, jobs []batchJob, outcomes []domain.FileOutcome) {
	conc := s.cfg.Convert.Concurrency
	if conc < 1 {
		conc = 1
	}

	sem := make(chan struct{}, conc)
	var wg sync.WaitGroup

	for _, job := range jobs {
		sem <- struct{}{} // acquire
		if ctx.Err() != nil {
			<-sem
			outcomes[job.slot] = domain.FileOutcome{Input: job.input, Err: ctx.Err().Error()}
			continue
		}

		wg.Add(1)
		go func(job batchJob) {
			defer wg.Done()
			defer func() { <-sem }() // release

			outcomes[job.slot] = s.runJob(ctx, job)
		}(job)
	}
	wg.Wait()
}

func (s *convertService) runJob(ctx context.Context, job batchJob) domain.FileOutcome {
	if dir := filepath.Dir(job.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.FileOutcome{Input: job.input, Err: err.Error()}
		}
	}

	if _, err := s.ConvertFile(ctx, job.input, job.output); err != nil {
		log.Printf("convertService: %s: %v", job.input, err)
		return domain.FileOutcome{Input: job.input, Err: err.Error()}
	}
	return domain.FileOutcome{Input: job.input, Output: job.output}
}
