package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

type stubReply struct {
	text      string
	truncated bool
	err       error
}

// completionStub replays a fixed sequence of provider replies and records
// every request it saw.
type completionStub struct {
	t        *testing.T
	replies  []stubReply
	requests []port.CompletionRequest
}

func (s *completionStub) Complete(_ context.Context, req port.CompletionRequest) (port.CompletionResult, error) {
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		s.t.Fatalf("unexpected completion call %d", len(s.requests))
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	if r.err != nil {
		return port.CompletionResult{}, r.err
	}
	return port.CompletionResult{Text: r.text, Truncated: r.truncated, TokensUsed: 100}, nil
}

func (s *completionStub) userPrompt(t *testing.T, call int) string {
	t.Helper()
	if call >= len(s.requests) {
		t.Fatalf("no request %d, only %d were made", call, len(s.requests))
	}
	msgs := s.requests[call].Messages
	if len(msgs) != 2 || msgs[0].Role != port.RoleSystem || msgs[1].Role != port.RoleUser {
		t.Fatalf("unexpected message layout: %+v", msgs)
	}
	return msgs[1].Content
}

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Save(ctx context.Context, rec port.CampaignRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockCampaignRepo) Update(ctx context.Context, id uuid.UUID, c domain.Campaign) (*port.CampaignRecord, error) {
	args := m.Called(ctx, id, c)
	rec, _ := args.Get(0).(*port.CampaignRecord)
	return rec, args.Error(1)
}

func (m *mockCampaignRepo) Get(ctx context.Context, id uuid.UUID) (*port.CampaignRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*port.CampaignRecord)
	return rec, args.Error(1)
}

func (m *mockCampaignRepo) List(ctx context.Context) ([]port.CampaignSummary, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]port.CampaignSummary)
	return list, args.Error(1)
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var testDefaults = Defaults{
	Model:       "gpt-4o",
	MaxTokens:   4096,
	Temperature: 0.7,
	Credential:  "test-key",
}

func newTestUseCase(stub *completionStub) *CampaignUseCase {
	return NewCampaignUseCase(stub, nil, testDefaults)
}

func mustJSON(t *testing.T, c domain.Campaign) string {
	t.Helper()
	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(raw)
}

// goodKeywordsCandidate answers a campaign-wide keyword regeneration with the
// right structure and entirely fresh texts.
func goodKeywordsCandidate(c domain.Campaign) domain.Campaign {
	out := c.Clone()
	freshKeywords(&out)
	return out
}

// badStructureCandidate drops everything but the first theme's first group.
func badStructureCandidate(c domain.Campaign) domain.Campaign {
	out := c.Clone()
	freshKeywords(&out)
	out.Themes = out.Themes[:1]
	out.Themes[0].AdGroups = out.Themes[0].AdGroups[:1]
	return out
}

func TestRegenerateFirstAttemptSuccess(t *testing.T) {
	original := testCampaign()
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, goodKeywordsCandidate(original))},
	}}
	uc := newTestUseCase(stub)

	result, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentKeywords,
		Target:      domain.CampaignTarget(),
	})
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if result.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", result.Attempts)
	}
	if result.Warning != "" {
		t.Fatalf("warning = %q, want none", result.Warning)
	}
	if got := result.Campaign.Themes[0].AdGroups[0].Keywords[0].Text; got == "burst pipe repair" {
		t.Fatal("keywords were not replaced")
	}
	if len(stub.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(stub.requests))
	}

	req := stub.requests[0]
	if req.Model != "gpt-4o" || req.MaxTokens != 4096 || req.Credential != "test-key" {
		t.Fatalf("defaults not applied: %+v", req)
	}
	if req.Temperature != 0.7 {
		t.Fatalf("temperature = %v", req.Temperature)
	}
	if req.Messages[0].Content != systemPrompt {
		t.Fatal("system prompt not sent")
	}
}

func TestRegenerateRetriesWithEscalatedPrompt(t *testing.T) {
	original := testCampaign()
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, badStructureCandidate(original))},
		{text: mustJSON(t, goodKeywordsCandidate(original))},
	}}
	uc := newTestUseCase(stub)

	result, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentKeywords,
		Target:      domain.CampaignTarget(),
	})
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if result.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", result.Attempts)
	}
	if len(stub.requests) != 2 {
		t.Fatalf("provider calls = %d, want 2", len(stub.requests))
	}

	first := stub.userPrompt(t, 0)
	if strings.Contains(first, "previous response was rejected") {
		t.Fatal("first prompt must not be escalated")
	}
	second := stub.userPrompt(t, 1)
	if !strings.Contains(second, "previous response was rejected") {
		t.Fatal("retry prompt is not escalated")
	}
	if !strings.Contains(second, "structure mismatch") {
		t.Fatal("retry prompt does not carry the rejection reason")
	}
}

func TestRegenerateStopsAfterThreeAttempts(t *testing.T) {
	original := testCampaign()
	bad := mustJSON(t, badStructureCandidate(original))
	stub := &completionStub{t: t, replies: []stubReply{
		{text: bad}, {text: bad}, {text: bad},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentKeywords,
		Target:      domain.CampaignTarget(),
	})
	if err == nil {
		t.Fatal("expected failure after exhausting attempts")
	}
	if len(stub.requests) != 3 {
		t.Fatalf("provider calls = %d, want 3", len(stub.requests))
	}

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error type = %T", err)
	}
	if genErr.Kind != port.FailureValidation {
		t.Fatalf("kind = %s", genErr.Kind)
	}
	if genErr.Attempts != 3 {
		t.Fatalf("attempts = %d, want 3", genErr.Attempts)
	}
	if !strings.Contains(genErr.Reason, "structure mismatch") {
		t.Fatalf("reason = %q", genErr.Reason)
	}
}

func TestRegenerateEmptyResponseIsTerminal(t *testing.T) {
	stub := &completionStub{t: t, replies: []stubReply{
		{err: port.ErrEmptyCompletion},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    testCampaign(),
		ContentType: domain.ContentAds,
		Target:      domain.CampaignTarget(),
	})

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != port.FailureEmptyResponse {
		t.Fatalf("error = %v", err)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(stub.requests))
	}
}

func TestRegenerateTruncationIsTerminal(t *testing.T) {
	stub := &completionStub{t: t, replies: []stubReply{
		{text: `{"themes": [{"name": "cut off`, truncated: true},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    testCampaign(),
		ContentType: domain.ContentAds,
		Target:      domain.CampaignTarget(),
	})

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != port.FailureTruncated {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(genErr.Reason, "token budget") {
		t.Fatalf("reason = %q", genErr.Reason)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(stub.requests))
	}
}

func TestRegenerateParseFailureIsTerminal(t *testing.T) {
	stub := &completionStub{t: t, replies: []stubReply{
		{text: "Sorry, I cannot help with that."},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    testCampaign(),
		ContentType: domain.ContentKeywords,
		Target:      domain.CampaignTarget(),
	})

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != port.FailureParse {
		t.Fatalf("error = %v", err)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(stub.requests))
	}
}

func TestRegenerateWithoutCredentialMakesNoCalls(t *testing.T) {
	stub := &completionStub{t: t}
	uc := NewCampaignUseCase(stub, nil, Defaults{Model: "gpt-4o", MaxTokens: 4096})

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    testCampaign(),
		ContentType: domain.ContentAds,
		Target:      domain.CampaignTarget(),
	})

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != port.FailureMissingCredential {
		t.Fatalf("error = %v", err)
	}
	if len(stub.requests) != 0 {
		t.Fatalf("provider calls = %d, want 0", len(stub.requests))
	}
}

func TestRegenerateDegradesUnknownTarget(t *testing.T) {
	original := testCampaign()
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, goodKeywordsCandidate(original))},
	}}
	uc := newTestUseCase(stub)

	result, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentKeywords,
		Target:      domain.ThemeTarget(7),
	})
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if !strings.Contains(result.Warning, "does not exist") {
		t.Fatalf("warning = %q", result.Warning)
	}
	// The degraded run is campaign wide, so no theme is singled out.
	if strings.Contains(stub.userPrompt(t, 0), "contains the ad group to update") {
		t.Fatal("prompt still targets a specific subtree")
	}
}

func TestRegenerateAdsOnlyLeavesOtherThemesAlone(t *testing.T) {
	original := testCampaign()

	// The model rewrites ads across the whole echoed tree even though only
	// one group was requested. The extra ads must not land.
	candidate := original.Clone()
	freshAds(&candidate)
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, candidate)},
	}}
	uc := newTestUseCase(stub)

	result, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentAds,
		Target:      domain.AdGroupTarget(0, 0),
	})
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}

	merged := result.Campaign
	if !reflect.DeepEqual(merged.Themes[1], original.Themes[1]) {
		t.Fatal("untargeted theme changed")
	}
	if !reflect.DeepEqual(merged.Themes[0].AdGroups[1], original.Themes[0].AdGroups[1]) {
		t.Fatal("untargeted sibling group changed")
	}
	if reflect.DeepEqual(merged.Themes[0].AdGroups[0].Ads, original.Themes[0].AdGroups[0].Ads) {
		t.Fatal("targeted group kept its old ads")
	}
	if !reflect.DeepEqual(merged.Themes[0].AdGroups[0].Keywords, original.Themes[0].AdGroups[0].Keywords) {
		t.Fatal("ads-only regeneration replaced keywords")
	}
}

func TestRegenerateRequestSettingsOverrideDefaults(t *testing.T) {
	original := testCampaign()
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, goodKeywordsCandidate(original))},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Regenerate(context.Background(), port.RegenerateParams{
		Campaign:    original,
		ContentType: domain.ContentKeywords,
		Target:      domain.CampaignTarget(),
		Settings: port.ModelSettings{
			Model:      "o3-mini",
			MaxTokens:  2000,
			Credential: "caller-key",
		},
	})
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}

	req := stub.requests[0]
	if req.Model != "o3-mini" || req.MaxTokens != 2000 || req.Credential != "caller-key" {
		t.Fatalf("caller settings not honored: %+v", req)
	}
}

func TestGenerate(t *testing.T) {
	generated := testCampaign()
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, generated)},
	}}
	uc := newTestUseCase(stub)

	campaign, err := uc.Generate(context.Background(), port.GenerateParams{
		Description:    "Plumbing company in Leeds",
		LandingPageURL: "https://other.example.com",
		ThemeCount:     2,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if campaign.Name != "Acme Plumbing" {
		t.Fatalf("name = %q", campaign.Name)
	}
	// The landing page comes from the request, never from the model.
	if campaign.LandingPageURL != "https://other.example.com" {
		t.Fatalf("landing page = %q", campaign.LandingPageURL)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(stub.requests))
	}
}

func TestGenerateRejectsThemelessAnswer(t *testing.T) {
	stub := &completionStub{t: t, replies: []stubReply{
		{text: `{"campaignName": "Acme", "themes": []}`},
	}}
	uc := newTestUseCase(stub)

	_, err := uc.Generate(context.Background(), port.GenerateParams{Description: "A bakery"})

	var genErr *port.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != port.FailureParse {
		t.Fatalf("error = %v", err)
	}
}

func TestGenerateDefaultsCampaignName(t *testing.T) {
	c := testCampaign()
	c.Name = ""
	stub := &completionStub{t: t, replies: []stubReply{
		{text: mustJSON(t, c)},
	}}
	uc := newTestUseCase(stub)

	campaign, err := uc.Generate(context.Background(), port.GenerateParams{Description: "A bakery"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if campaign.Name != "Generated campaign" {
		t.Fatalf("name = %q", campaign.Name)
	}
}

func TestSaveCampaignAssignsIdentity(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("Save", mock.Anything, mock.AnythingOfType("port.CampaignRecord")).Return(nil)
	uc := NewCampaignUseCase(nil, repo, testDefaults)

	before := time.Now().UTC()
	rec, err := uc.SaveCampaign(context.Background(), testCampaign())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("no id assigned")
	}
	if rec.CreatedAt.Before(before) || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("timestamps: created %v updated %v", rec.CreatedAt, rec.UpdatedAt)
	}
	repo.AssertExpectations(t)
}

func TestGetCampaignUnknownId(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	uc := NewCampaignUseCase(nil, repo, testDefaults)

	_, err := uc.GetCampaign(context.Background(), uuid.New())
	if !errors.Is(err, port.ErrCampaignNotFound) {
		t.Fatalf("error = %v", err)
	}
}

func TestUpdateCampaignUnknownId(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	uc := NewCampaignUseCase(nil, repo, testDefaults)

	_, err := uc.UpdateCampaign(context.Background(), uuid.New(), testCampaign())
	if !errors.Is(err, port.ErrCampaignNotFound) {
		t.Fatalf("error = %v", err)
	}
}

func TestListCampaigns(t *testing.T) {
	repo := new(mockCampaignRepo)
	summaries := []port.CampaignSummary{{ID: uuid.New(), Name: "Acme Plumbing"}}
	repo.On("List", mock.Anything).Return(summaries, nil)
	uc := NewCampaignUseCase(nil, repo, testDefaults)

	got, err := uc.ListCampaigns(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Acme Plumbing" {
		t.Fatalf("summaries = %+v", got)
	}
}

func TestDeleteCampaignPassthrough(t *testing.T) {
	repo := new(mockCampaignRepo)
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(port.ErrCampaignNotFound)
	uc := NewCampaignUseCase(nil, repo, testDefaults)

	if err := uc.DeleteCampaign(context.Background(), id); !errors.Is(err, port.ErrCampaignNotFound) {
		t.Fatalf("error = %v", err)
	}
}
