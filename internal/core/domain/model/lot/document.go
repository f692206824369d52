package lot

import (
	"errors"
	"strings"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// DocumentTypeCancellationDetails marks the document that justifies deleting a lot.
const DocumentTypeCancellationDetails = "cancellationDetails"

// Document is the metadata of a file attached to a lot. The binary itself
// lives in an external document store referenced by url.
type Document struct {
	id            kernel.UUID
	title         string
	documentType  string
	format        string
	url           string
	datePublished time.Time
}

// NewDocument validates and builds document metadata published at now.
func NewDocument(id kernel.UUID, title, documentType, format, url string, now time.Time) (Document, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(title) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("title"))
	}
	if strings.TrimSpace(url) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("url"))
	}
	if err != nil {
		return Document{}, err
	}

	return Document{
		id:            id,
		title:         title,
		documentType:  documentType,
		format:        format,
		url:           url,
		datePublished: now,
	}, nil
}

// ID returns the document id, unique within the lot.
func (d Document) ID() kernel.UUID { return d.id }

func (d Document) Title() string { return d.title }

// DocumentType is free text except for DocumentTypeCancellationDetails.
func (d Document) DocumentType() string { return d.documentType }

// Format is the MIME type reported by the uploader.
func (d Document) Format() string { return d.format }

// URL points at the file in the document store.
func (d Document) URL() string { return d.url }

// DatePublished is the time the document was attached.
func (d Document) DatePublished() time.Time { return d.datePublished }

// IsCancellationDetails reports whether the document can justify deletion.
func (d Document) IsCancellationDetails() bool {
	return d.documentType == DocumentTypeCancellationDetails
}
