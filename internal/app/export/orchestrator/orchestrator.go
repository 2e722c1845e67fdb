// Package orchestrator runs the finalize pipeline for one record:
// metadata, then submission, then the receipt document.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/dalemusser/registro/internal/app/client/submit"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// MetadataGenerator produces keywords and a header. It never fails.
type MetadataGenerator interface {
	Generate(ctx context.Context, r models.ResourceRecord) models.GeneratedMetadata
}

// Submitter relays the record to the central store.
type Submitter interface {
	Submit(ctx context.Context, r models.ResourceRecord, meta models.GeneratedMetadata) submit.Result
}

// DocumentExporter renders the receipt.
type DocumentExporter interface {
	Export(r models.ResourceRecord) (models.Document, error)
}

// Result reports the submission and the document independently.
type Result struct {
	Metadata   models.GeneratedMetadata
	Submission submit.Result
	// Status follows the submission only.
	Status models.SubmissionStatus

	Document    *models.Document
	DocumentErr error
}

// Outcome flattens the result for storage on the form session.
func (r Result) Outcome() models.ExportOutcome {
	o := models.ExportOutcome{
		Metadata:   r.Metadata,
		Kind:       r.Submission.Kind,
		Status:     r.Status,
		HTTPStatus: r.Submission.HTTPStatus,
		Message:    r.Submission.Message,
		Document:   r.Document,
	}
	if r.DocumentErr != nil {
		o.DocumentErr = r.DocumentErr.Error()
	}
	return o
}

// Orchestrator wires the three steps together.
type Orchestrator struct {
	meta MetadataGenerator
	sub  Submitter
	docs DocumentExporter
	log  *zap.Logger
}

// New returns an Orchestrator.
func New(meta MetadataGenerator, sub Submitter, docs DocumentExporter, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{meta: meta, sub: sub, docs: docs, log: log}
}

// Run executes the pipeline once, strictly in order and without retries.
// The document step runs whatever the submission outcome.
func (o *Orchestrator) Run(ctx context.Context, r models.ResourceRecord) Result {
	var res Result

	res.Metadata = o.meta.Generate(ctx, r)
	res.Submission = o.sub.Submit(ctx, r, res.Metadata)
	res.Status = res.Submission.Kind.Status()

	doc, err := o.export(r)
	if err != nil {
		res.DocumentErr = err
		o.log.Error("receipt export failed", zap.String("titulo", r.Titulo), zap.Error(err))
	} else {
		res.Document = &doc
	}

	o.log.Info("record finalized",
		zap.String("titulo", r.Titulo),
		zap.String("result", string(res.Submission.Kind)),
		zap.Bool("document", res.Document != nil))
	return res
}

func (o *Orchestrator) export(r models.ResourceRecord) (doc models.Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("receipt export panicked: %v", p)
		}
	}()
	return o.docs.Export(r)
}
