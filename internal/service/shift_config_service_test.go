package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

func TestShiftConfigService_Get_Bootstrap(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := env.svc.ShiftConfig.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "07:00", cfg.StartTime)
	assert.Equal(t, "17:00", cfg.EndTime)
	assert.Equal(t, []dto.BreakWindow{{Start: "12:00", End: "13:00"}}, cfg.Breaks)
	assert.Empty(t, cfg.UpdatedAt)
}

func TestShiftConfigService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.ShiftConfig.Update(ctx, &dto.UpdateShiftConfigRequest{
		StartTime: "06:00",
		EndTime:   "15:48",
		Timezone:  "America/Sao_Paulo",
		Breaks: []dto.BreakWindow{
			{Start: "09:00", End: "09:15"},
			{Start: "11:30", End: "12:30"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UpdatedAt)
	require.NotNil(t, env.store.shift)
	assert.Len(t, env.store.shift.Breaks, 2)

	shift, err := env.svc.ShiftConfig.Shift(ctx)
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", shift.Location.String())
	assert.Len(t, shift.Breaks, 2)
}

func TestShiftConfigService_Update_Rejects(t *testing.T) {
	cases := map[string]*dto.UpdateShiftConfigRequest{
		"end before start":  {StartTime: "17:00", EndTime: "07:00", Timezone: "UTC"},
		"unknown timezone":  {StartTime: "07:00", EndTime: "17:00", Timezone: "Mars/Olympus"},
		"bad clock":         {StartTime: "7:00", EndTime: "17:00", Timezone: "UTC"},
		"break outside":     {StartTime: "07:00", EndTime: "17:00", Timezone: "UTC", Breaks: []dto.BreakWindow{{Start: "17:30", End: "18:00"}}},
		"overlapping break": {StartTime: "07:00", EndTime: "17:00", Timezone: "UTC", Breaks: []dto.BreakWindow{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "13:30"}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.svc.ShiftConfig.Update(context.Background(), req)
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
			assert.Nil(t, env.store.shift)
		})
	}
}
