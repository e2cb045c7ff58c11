package discount

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

type mockRepo struct {
	codes   map[string]*Code
	err     error
	lookups []string
}

func (m *mockRepo) FindByCode(_ context.Context, code string) (*Code, error) {
	m.lookups = append(m.lookups, code)
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.codes[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) FindByID(_ context.Context, id uuid.UUID) (*Code, error) {
	for _, c := range m.codes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func newRepo(codes ...Code) *mockRepo {
	m := &mockRepo{codes: make(map[string]*Code, len(codes))}
	for i := range codes {
		m.codes[codes[i].Code] = &codes[i]
	}
	return m
}

var (
	start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
)

func sale10() Code {
	return Code{
		ID:                 uuid.MustParse("5b0f4a4e-1df1-4d84-9a55-6b1d7a2c0f01"),
		Code:               "SALE10",
		Percentage:         money.MustPercentage(10),
		StartDate:          start,
		EndDate:            end,
		UsageLimit:         5,
		UsedCount:          0,
		MinimumOrderAmount: money.New(200000),
		IsActive:           true,
	}
}

func TestValidator_Validate(t *testing.T) {
	mid := start.Add(10 * 24 * time.Hour)

	tests := []struct {
		name      string
		mutate    func(c *Code)
		code      string
		now       time.Time
		amount    money.Money
		wantErr   error
		wantKey   string
		wantValue string
	}{
		{
			name:   "valid",
			code:   "SALE10",
			now:    mid,
			amount: money.New(500000),
		},
		{
			name:   "case insensitive with spaces",
			code:   "  sale10 ",
			now:    mid,
			amount: money.New(500000),
		},
		{
			name:    "unknown code",
			code:    "NOPE",
			now:     mid,
			amount:  money.New(500000),
			wantErr: ErrNotFound,
		},
		{
			name:    "empty code",
			code:    "   ",
			now:     mid,
			amount:  money.New(500000),
			wantErr: ErrNotFound,
		},
		{
			name:    "inactive wins over expiry",
			mutate:  func(c *Code) { c.IsActive = false },
			code:    "SALE10",
			now:     end.Add(time.Hour),
			amount:  money.New(500000),
			wantErr: ErrInactive,
		},
		{
			name:   "exactly at start",
			code:   "SALE10",
			now:    start,
			amount: money.New(500000),
		},
		{
			name:      "one millisecond before start",
			code:      "SALE10",
			now:       start.Add(-time.Millisecond),
			amount:    money.New(500000),
			wantErr:   ErrNotYetStarted,
			wantKey:   "startDate",
			wantValue: "2025-06-01T00:00:00Z",
		},
		{
			name:   "exactly at end",
			code:   "SALE10",
			now:    end,
			amount: money.New(500000),
		},
		{
			name:      "one millisecond after end",
			code:      "SALE10",
			now:       end.Add(time.Millisecond),
			amount:    money.New(500000),
			wantErr:   ErrExpired,
			wantKey:   "endDate",
			wantValue: "2025-06-30T23:59:59Z",
		},
		{
			name:      "usage limit reached",
			mutate:    func(c *Code) { c.UsedCount = 5 },
			code:      "SALE10",
			now:       mid,
			amount:    money.New(500000),
			wantErr:   ErrLimitReached,
			wantKey:   "usageLimit",
			wantValue: "5",
		},
		{
			name:      "limit checked before minimum",
			mutate:    func(c *Code) { c.UsedCount = 5 },
			code:      "SALE10",
			now:       mid,
			amount:    money.New(1),
			wantErr:   ErrLimitReached,
			wantKey:   "usageLimit",
			wantValue: "5",
		},
		{
			name:      "below minimum",
			code:      "SALE10",
			now:       mid,
			amount:    money.New(199999),
			wantErr:   ErrBelowMinimum,
			wantKey:   "minimumOrderAmount",
			wantValue: "200000",
		},
		{
			name:   "exactly minimum",
			code:   "SALE10",
			now:    mid,
			amount: money.New(200000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sale10()
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			v := NewValidator(newRepo(c))

			got, err := v.Validate(context.Background(), tt.code, tt.now, tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				var rej *RejectionError
				require.ErrorAs(t, err, &rej)
				if tt.wantKey != "" {
					assert.Equal(t, tt.wantValue, rej.Details()[tt.wantKey])
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "SALE10", got.Code)
		})
	}
}

func TestValidator_NoSideEffects(t *testing.T) {
	repo := newRepo(sale10())
	v := NewValidator(repo)

	for range 3 {
		_, err := v.Validate(context.Background(), "sale10", start, money.New(500000))
		require.NoError(t, err)
	}
	assert.Equal(t, 0, repo.codes["SALE10"].UsedCount)
	assert.Equal(t, []string{"SALE10", "SALE10", "SALE10"}, repo.lookups)
}

func TestValidator_RepositoryFailure(t *testing.T) {
	v := NewValidator(&mockRepo{err: errors.New("connection reset")})

	_, err := v.Validate(context.Background(), "SALE10", start, money.New(1))
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "lookup discount")
}

func TestRejectionError_Kinds(t *testing.T) {
	c := sale10()
	c.UsedCount = c.UsageLimit

	err := c.Check(start, money.New(500000))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "discount_limit_reached", e.Code)
	assert.Equal(t, `discount "SALE10": discount code usage limit reached (usageLimit 5)`, err.Error())
}

func TestCode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Code)
		wantErr bool
	}{
		{name: "ok"},
		{name: "lowercase", mutate: func(c *Code) { c.Code = "sale10" }, wantErr: true},
		{name: "empty window", mutate: func(c *Code) { c.EndDate = c.StartDate }, wantErr: true},
		{name: "zero limit", mutate: func(c *Code) { c.UsageLimit = 0 }, wantErr: true},
		{name: "overused", mutate: func(c *Code) { c.UsedCount = 6 }, wantErr: true},
		{name: "negative minimum", mutate: func(c *Code) { c.MinimumOrderAmount = money.New(-1) }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sale10()
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
