package agreement

import "context"

// Repository defines the data access required by the lifecycle service.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Agreement, error)
	Get(ctx context.Context, id string) (Agreement, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Agreement, error)
	ReplaceFields(ctx context.Context, id string, fields FieldMap) (Agreement, error)
	CompleteFields(ctx context.Context, id string, fields FieldMap) (Agreement, error)
	Transition(ctx context.Context, id string, to Status) (Agreement, error)
}

// AudioSource locates the most recent audio recording for an agreement.
// found is false when no audio evidence has been uploaded yet.
type AudioSource interface {
	LatestAudio(ctx context.Context, agreementID string) (locator, contentType string, found bool, err error)
}

// BlobStore reads stored evidence payloads.
type BlobStore interface {
	Get(ctx context.Context, locator string) ([]byte, error)
}

// Transcriber converts recorded audio into text. It may fail; the service
// treats any failure as "no transcript".
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Extractor maps a transcript to field values for an agreement type and
// reports which required fields a field map leaves unfilled.
type Extractor interface {
	Extract(transcript, agreementType string) map[string]any
	Missing(agreementType string, fields map[string]any) []string
}

// Service orchestrates the agreement lifecycle: creation, the
// transcription-driven extraction pipeline, field completion,
// finalization and cancellation.
type Service struct {
	repo      Repository
	audio     AudioSource
	blobs     BlobStore
	stt       Transcriber
	extractor Extractor
}

func NewService(repo Repository, audio AudioSource, blobs BlobStore, stt Transcriber, extractor Extractor) *Service {
	return &Service{
		repo:      repo,
		audio:     audio,
		blobs:     blobs,
		stt:       stt,
		extractor: extractor,
	}
}

// Create registers a new agreement record in IN_PROGRESS with an empty
// field map. The owner must exist.
func (s *Service) Create(ctx context.Context, params CreateParams) (Agreement, error) {
	if params.OwnerID == "" {
		return Agreement{}, ErrMissingOwner
	}
	t, err := ParseType(string(params.Type))
	if err != nil {
		return Agreement{}, err
	}
	params.Type = t
	return s.repo.Create(ctx, params)
}

// Get returns a single agreement by identifier.
func (s *Service) Get(ctx context.Context, id string) (Agreement, error) {
	return s.repo.Get(ctx, id)
}

// ListByOwner returns all agreements owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Agreement, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// RunExtraction executes the extraction pipeline: locate the latest audio
// evidence, transcribe it, derive field values, and overwrite the stored
// field map with exactly those values. Status never changes here.
//
// Transcription problems (missing audio, blob read failure, provider error)
// never propagate: the pipeline degrades to an empty extraction so the
// manual-entry path stays available.
func (s *Service) RunExtraction(ctx context.Context, id string) (ExtractionResult, error) {
	ag, err := s.repo.Get(ctx, id)
	if err != nil {
		return ExtractionResult{}, err
	}
	if !ag.Status.Mutable() {
		return ExtractionResult{}, ErrInvalidState
	}

	fields := FieldMap{}
	if transcript, ok := s.fetchTranscript(ctx, ag.ID); ok {
		for k, v := range s.extractor.Extract(transcript, string(ag.Type)) {
			fields[k] = v
		}
	}
	missing := s.extractor.Missing(string(ag.Type), fields)

	if _, err := s.repo.ReplaceFields(ctx, id, fields); err != nil {
		return ExtractionResult{}, err
	}

	return ExtractionResult{ExtractedFields: fields, MissingFields: missing}, nil
}

// fetchTranscript reads the latest audio recording and transcribes it.
// ok is false on any failure along the way, selecting the all-missing branch.
func (s *Service) fetchTranscript(ctx context.Context, agreementID string) (string, bool) {
	locator, contentType, found, err := s.audio.LatestAudio(ctx, agreementID)
	if err != nil || !found {
		return "", false
	}

	audio, err := s.blobs.Get(ctx, locator)
	if err != nil {
		return "", false
	}

	transcript, err := s.stt.Transcribe(ctx, audio, contentType)
	if err != nil {
		return "", false
	}
	return transcript, true
}

// CompleteFields overwrites the field map with the caller's merged data and
// moves the agreement to REVIEW. The caller is responsible for merging
// extracted values with manual corrections before submitting.
func (s *Service) CompleteFields(ctx context.Context, id string, fields FieldMap) (Agreement, error) {
	ag, err := s.repo.Get(ctx, id)
	if err != nil {
		return Agreement{}, err
	}
	if !ag.Status.Mutable() {
		return Agreement{}, ErrInvalidState
	}
	if fields == nil {
		fields = FieldMap{}
	}
	return s.repo.CompleteFields(ctx, id, fields)
}

// Finalize locks the agreement into SIGNED and stamps signed_at. Missing
// required fields do not block the transition; completeness is advisory
// and surfaced through RunExtraction.
func (s *Service) Finalize(ctx context.Context, id string) (Agreement, error) {
	return s.transition(ctx, id, StatusSigned)
}

// Cancel aborts an open agreement.
func (s *Service) Cancel(ctx context.Context, id string) (Agreement, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to Status) (Agreement, error) {
	ag, err := s.repo.Get(ctx, id)
	if err != nil {
		return Agreement{}, err
	}
	if !CanTransition(ag.Status, to) {
		return Agreement{}, ErrInvalidState
	}
	return s.repo.Transition(ctx, id, to)
}
