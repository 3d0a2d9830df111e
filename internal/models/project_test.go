// internal/models/project_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ProjectStatus
		ok       bool
	}{
		{"canonical pending", "pending", ProjectStatusPending, true},
		{"canonical approved", "approved", ProjectStatusApproved, true},
		{"canonical restoration", "restoration_requested", ProjectStatusRestorationRequested, true},
		{"legacy in progress", "In Bearbeitung", ProjectStatusInProgress, true},
		{"legacy rejected", "Abgelehnt", ProjectStatusRejected, true},
		{"unknown value", "archived", "", false},
		{"empty value", "", "", false},
		{"case sensitive", "Pending", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := NormalizeStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestProjectStatusValid(t *testing.T) {
	valid := []ProjectStatus{
		ProjectStatusPending, ProjectStatusInProgress, ProjectStatusApproved,
		ProjectStatusRejected, ProjectStatusRemoved, ProjectStatusRestorationRequested,
		ProjectStatusBlocked,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, ProjectStatus("In Bearbeitung").Valid())
	assert.False(t, ProjectStatus("").Valid())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ProjectStatus
		to      ProjectStatus
		allowed bool
	}{
		{"pending to in_progress", ProjectStatusPending, ProjectStatusInProgress, true},
		{"pending to approved", ProjectStatusPending, ProjectStatusApproved, true},
		{"pending to rejected", ProjectStatusPending, ProjectStatusRejected, true},
		{"pending to removed", ProjectStatusPending, ProjectStatusRemoved, false},
		{"in_progress to approved", ProjectStatusInProgress, ProjectStatusApproved, true},
		{"in_progress to rejected", ProjectStatusInProgress, ProjectStatusRejected, true},
		{"in_progress to pending", ProjectStatusInProgress, ProjectStatusPending, false},
		{"approved to rejected", ProjectStatusApproved, ProjectStatusRejected, false},
		{"rejected to approved", ProjectStatusRejected, ProjectStatusApproved, false},
		{"removed to approved", ProjectStatusRemoved, ProjectStatusApproved, false},
		{"restoration_requested to approved", ProjectStatusRestorationRequested, ProjectStatusApproved, true},
		{"restoration_requested to rejected", ProjectStatusRestorationRequested, ProjectStatusRejected, true},
		{"restoration_requested to in_progress", ProjectStatusRestorationRequested, ProjectStatusInProgress, false},
		{"blocked to approved", ProjectStatusBlocked, ProjectStatusApproved, false},
		{"same status is allowed", ProjectStatusApproved, ProjectStatusApproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProjectRequest{Status: tt.from}
			assert.Equal(t, tt.allowed, p.CanTransitionTo(tt.to))
		})
	}
}

func TestApprove(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("sets expiration from duration", func(t *testing.T) {
		p := &ProjectRequest{Status: ProjectStatusInProgress, DurationMonths: 2}
		p.Approve(now)

		assert.Equal(t, ProjectStatusApproved, p.Status)
		assert.NotNil(t, p.ExpirationDate)
		assert.Equal(t, now.AddDate(0, 2, 0), *p.ExpirationDate)
		assert.True(t, p.IsActive)
	})

	t.Run("defaults missing duration", func(t *testing.T) {
		p := &ProjectRequest{Status: ProjectStatusPending}
		p.Approve(now)

		assert.Equal(t, DefaultDurationMonths, p.DurationMonths)
		assert.Equal(t, now.AddDate(0, DefaultDurationMonths, 0), *p.ExpirationDate)
	})
}

func TestExtend(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	oldExpiry := now.AddDate(0, -1, 0)

	p := &ProjectRequest{
		Status:         ProjectStatusApproved,
		ExpirationDate: &oldExpiry,
		DurationMonths: 1,
		ExtensionCount: 1,
	}
	p.Extend(now)

	// The new window starts from now, not from the old expiration.
	assert.Equal(t, now.AddDate(0, 1, 0), *p.ExpirationDate)
	assert.Equal(t, 2, p.ExtensionCount)
	assert.True(t, p.IsActive)
}

func TestActiveAt(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		expiration *time.Time
		active     bool
	}{
		{"no expiration", nil, true},
		{"future expiration", &future, true},
		{"past expiration", &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProjectRequest{ExpirationDate: tt.expiration}
			assert.Equal(t, tt.active, p.ActiveAt(now))
		})
	}
}

func TestExtensionEligibleAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		project  ProjectRequest
		eligible bool
	}{
		{
			"expired approved below cap",
			ProjectRequest{Status: ProjectStatusApproved, ExpirationDate: &past, ExtensionCount: 2},
			true,
		},
		{
			"still active",
			ProjectRequest{Status: ProjectStatusApproved, ExpirationDate: &future},
			false,
		},
		{
			"cap reached",
			ProjectRequest{Status: ProjectStatusApproved, ExpirationDate: &past, ExtensionCount: MaxExtensions},
			false,
		},
		{
			"not approved",
			ProjectRequest{Status: ProjectStatusRemoved, ExpirationDate: &past},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.project.ExtensionEligibleAt(now))
		})
	}
}

func TestBlockable(t *testing.T) {
	assert.True(t, (&ProjectRequest{Status: ProjectStatusApproved}).Blockable())
	assert.True(t, (&ProjectRequest{Status: ProjectStatusInProgress}).Blockable())
	assert.False(t, (&ProjectRequest{Status: ProjectStatusPending}).Blockable())
	assert.False(t, (&ProjectRequest{Status: ProjectStatusBlocked}).Blockable())
	assert.False(t, (&ProjectRequest{Status: ProjectStatusRemoved}).Blockable())
}

func TestRestoreFromBlock(t *testing.T) {
	approved := ProjectStatusApproved
	inProgress := ProjectStatusInProgress
	garbage := ProjectStatus("In Bearbeitung")

	tests := []struct {
		name     string
		pre      *ProjectStatus
		expected ProjectStatus
	}{
		{"restores approved", &approved, ProjectStatusApproved},
		{"restores in_progress", &inProgress, ProjectStatusInProgress},
		{"legacy row without recorded status", nil, ProjectStatusInProgress},
		{"non-canonical recorded status", &garbage, ProjectStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProjectRequest{Status: ProjectStatusBlocked, PreBlockStatus: tt.pre}
			assert.Equal(t, tt.expected, p.RestoreFromBlock())
		})
	}
}

func TestRemovable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	assert.True(t, (&ProjectRequest{Status: ProjectStatusApproved}).Removable(now))
	assert.True(t, (&ProjectRequest{Status: ProjectStatusInProgress}).Removable(now))
	assert.False(t, (&ProjectRequest{Status: ProjectStatusApproved, ExpirationDate: &past}).Removable(now))
	assert.False(t, (&ProjectRequest{Status: ProjectStatusPending}).Removable(now))
	assert.False(t, (&ProjectRequest{Status: ProjectStatusRemoved}).Removable(now))
}

func TestAfterFindNormalizesStatus(t *testing.T) {
	p := &ProjectRequest{Status: ProjectStatus("In Bearbeitung")}

	err := p.AfterFind(nil)
	assert.NoError(t, err)
	assert.Equal(t, ProjectStatusInProgress, p.Status)
	assert.True(t, p.IsActive)
}

func TestAfterFindRecomputesActive(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	p := &ProjectRequest{Status: ProjectStatusApproved, ExpirationDate: &past, IsActive: true}

	err := p.AfterFind(nil)
	assert.NoError(t, err)
	assert.False(t, p.IsActive)
}

func TestProjectTypeValid(t *testing.T) {
	for _, typ := range []ProjectType{ProjectTypeWebsite, ProjectTypeWebapp, ProjectTypeDashboard, ProjectTypeBot, ProjectTypeOther} {
		assert.True(t, typ.Valid())
	}
	assert.False(t, ProjectType("desktop").Valid())
}

func TestReviewTypeValid(t *testing.T) {
	assert.True(t, ReviewTypeAI.Valid())
	assert.True(t, ReviewTypeTeam.Valid())
	assert.False(t, ReviewType("manual").Valid())
}
