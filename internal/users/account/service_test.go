// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/pkg/pagination"
)

type fakeRepo struct {
	profiles map[string]*Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: map[string]*Profile{}}
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeRepo) FindArtistBySlug(_ context.Context, slug string) (*Profile, error) {
	for _, p := range r.profiles {
		if p.ArtistSlug == slug && p.ArtistStatus == ArtistStatusApproved {
			return p, nil
		}
	}
	return nil, apperr.NotFound("Artist")
}

func (r *fakeRepo) UpdateProfile(_ context.Context, profile *Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	delete(r.profiles, id)
	return nil
}

func (r *fakeRepo) SetArtistStatus(_ context.Context, userID string, status ArtistStatus, artistName, artistSlug, role string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	p.ArtistStatus = status
	p.ArtistName = artistName
	p.ArtistSlug = artistSlug
	p.Role = role
	return nil
}

func (r *fakeRepo) ListByArtistStatus(_ context.Context, status ArtistStatus, _ pagination.Params) ([]*Profile, int, error) {
	var out []*Profile
	for _, p := range r.profiles {
		if p.ArtistStatus == status {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) CountArtistSlug(_ context.Context, base string) (int, error) {
	count := 0
	for _, p := range r.profiles {
		if p.ArtistSlug == base {
			count++
		}
	}
	return count, nil
}

type noopRevoker struct{}

func (noopRevoker) RevokeAll(context.Context, string) error { return nil }

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(_ context.Context, _, action, _, _ string) {
	a.actions = append(a.actions, action)
}

func newTestService() (*Service, *fakeRepo, *recordingAuditor) {
	repo := newFakeRepo()
	auditor := &recordingAuditor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, noopRevoker{}, auditor, logger), repo, auditor
}

func seedMember(repo *fakeRepo, id string) *Profile {
	p := &Profile{ID: id, Username: "user-" + id, Role: "member", ArtistStatus: ArtistStatusNone}
	repo.profiles[id] = p
	return p
}

func TestRequestArtistVerification_MovesToRequested(t *testing.T) {
	service, repo, _ := newTestService()
	seedMember(repo, "u1")

	profile, err := service.RequestArtistVerification(context.Background(), "u1", "Night Circuit")

	require.NoError(t, err)
	assert.Equal(t, ArtistStatusRequested, profile.ArtistStatus)
	assert.Equal(t, "Night Circuit", profile.ArtistName)
}

func TestRequestArtistVerification_RejectsDoubleApplication(t *testing.T) {
	service, repo, _ := newTestService()
	seedMember(repo, "u1")

	_, err := service.RequestArtistVerification(context.Background(), "u1", "Night Circuit")
	require.NoError(t, err)

	_, err = service.RequestArtistVerification(context.Background(), "u1", "Night Circuit")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestApproveArtist_PromotesRoleAndAssignsSlug(t *testing.T) {
	service, repo, auditor := newTestService()
	seedMember(repo, "u1")

	_, err := service.RequestArtistVerification(context.Background(), "u1", "Night Circuit")
	require.NoError(t, err)

	profile, err := service.ApproveArtist(context.Background(), "admin", "u1")

	require.NoError(t, err)
	assert.Equal(t, ArtistStatusApproved, profile.ArtistStatus)
	assert.Equal(t, "artist", profile.Role)
	assert.Equal(t, "night-circuit", profile.ArtistSlug)
	assert.Contains(t, auditor.actions, audit.ActionArtistApproved)

	ok, err := service.IsApprovedArtist(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApproveArtist_RequiresPendingApplication(t *testing.T) {
	service, repo, _ := newTestService()
	seedMember(repo, "u1")

	_, err := service.ApproveArtist(context.Background(), "admin", "u1")

	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestRejectArtist_AllowsReapplication(t *testing.T) {
	service, repo, auditor := newTestService()
	seedMember(repo, "u1")

	_, err := service.RequestArtistVerification(context.Background(), "u1", "Night Circuit")
	require.NoError(t, err)

	profile, err := service.RejectArtist(context.Background(), "admin", "u1", "Incomplete application")
	require.NoError(t, err)
	assert.Equal(t, ArtistStatusRejected, profile.ArtistStatus)
	assert.Equal(t, "member", profile.Role)
	assert.Contains(t, auditor.actions, audit.ActionArtistRejected)

	_, err = service.RequestArtistVerification(context.Background(), "u1", "Second Wind")
	require.NoError(t, err)
}

func TestIsApprovedArtist_FalseForMember(t *testing.T) {
	service, repo, _ := newTestService()
	seedMember(repo, "u1")

	ok, err := service.IsApprovedArtist(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
