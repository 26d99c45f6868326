package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_registry/internal/domain"
)

func TestGuestDirectory_CreateChecks(t *testing.T) {
	r := newRegistries()
	ana := r.guest("111", "Ana")

	_, err := r.guests.Create(ctx, domain.Guest{NationalID: "111", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.Create(ctx, domain.Guest{NationalID: "222", GuarantorID: ptr(int64(99))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bob, err := r.guests.Create(ctx, domain.Guest{NationalID: "222", Name: "Bob", GuarantorID: ptr(ana.ID)})
	require.NoError(t, err)
	require.NotNil(t, bob.GuarantorID)
	assert.Equal(t, ana.ID, *bob.GuarantorID)

	_, err = r.guests.Create(ctx, domain.Guest{NationalID: "333", GuarantorID: ptr(ana.ID)})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
	assert.Contains(t, err.Error(), "guarantor already designated")
}

func TestGuestDirectory_GuarantorExclusivityAndSelf(t *testing.T) {
	r := newRegistries()
	g1 := r.guest("1", "G1")
	g2 := r.guest("2", "G2")

	_, err := r.guests.AssignGuarantor(ctx, g1.ID, g2.ID)
	require.NoError(t, err)

	_, err = r.guests.AssignGuarantor(ctx, g1.ID, g2.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.AssignGuarantor(ctx, g1.ID, g1.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.AssignGuarantor(ctx, g1.ID, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGuestDirectory_DeleteGuardedWhileGuarantor(t *testing.T) {
	r := newRegistries()
	g1 := r.guest("1", "G1")
	g2 := r.guest("2", "G2")
	_, err := r.guests.AssignGuarantor(ctx, g2.ID, g1.ID)
	require.NoError(t, err)

	err = r.guests.Delete(ctx, g1.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.RemoveGuarantor(ctx, g2.ID)
	require.NoError(t, err)
	require.NoError(t, r.guests.Delete(ctx, g1.ID))

	_, err = r.guests.Get(ctx, g1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.guests.Delete(ctx, g1.ID), domain.ErrNotFound)
}

func TestGuestDirectory_RemoveGuarantorWithoutOne(t *testing.T) {
	r := newRegistries()
	g := r.guest("1", "G1")
	_, err := r.guests.RemoveGuarantor(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
}

func TestGuestDirectory_Update(t *testing.T) {
	r := newRegistries()
	g1 := r.guest("1", "G1")
	g2 := r.guest("2", "G2")
	g3 := r.guest("3", "G3")
	_, err := r.guests.AssignGuarantor(ctx, g3.ID, g2.ID)
	require.NoError(t, err)

	_, err = r.guests.Update(ctx, 404, domain.Guest{NationalID: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.guests.Update(ctx, g1.ID, domain.Guest{NationalID: "1", GuarantorID: ptr(g1.ID)})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation, "self guarantee")

	_, err = r.guests.Update(ctx, g1.ID, domain.Guest{NationalID: "1", GuarantorID: ptr(g2.ID)})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation, "slot held by g3")

	_, err = r.guests.Update(ctx, g1.ID, domain.Guest{NationalID: "2"})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation, "national id of g2")

	// g3 keeps its own guarantor and national id on a full replace
	out, err := r.guests.Update(ctx, g3.ID, domain.Guest{NationalID: "3", Name: "G3b", GuarantorID: ptr(g2.ID)})
	require.NoError(t, err)
	assert.Equal(t, "G3b", out.Name)
	assert.Equal(t, g3.ID, out.ID)

	// full replace drops fields left empty
	out, err = r.guests.Update(ctx, g3.ID, domain.Guest{NationalID: "3"})
	require.NoError(t, err)
	assert.Empty(t, out.Name)
	assert.Nil(t, out.GuarantorID)
}

func TestGuestDirectory_PatchMerges(t *testing.T) {
	r := newRegistries()
	g, err := r.guests.Create(ctx, domain.Guest{NationalID: "1", Name: "Ana", Phone: "999999999", Email: "ana@example.com"})
	require.NoError(t, err)
	guarantor := r.guest("2", "Bea")
	_, err = r.guests.AssignGuarantor(ctx, g.ID, guarantor.ID)
	require.NoError(t, err)

	out, err := r.guests.Patch(ctx, g.ID, domain.GuestPatch{Phone: ptr("888888888")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "888888888", out.Phone)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "1", out.NationalID)
	require.NotNil(t, out.GuarantorID, "omitted guarantor is retained")
	assert.Equal(t, guarantor.ID, *out.GuarantorID)

	_, err = r.guests.Patch(ctx, g.ID, domain.GuestPatch{NationalID: ptr("2")})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	// checked exactly as on create: the guest's own national id counts as taken
	_, err = r.guests.Patch(ctx, g.ID, domain.GuestPatch{NationalID: ptr("1")})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.Patch(ctx, g.ID, domain.GuestPatch{GuarantorID: ptr(g.ID)})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.guests.Patch(ctx, 404, domain.GuestPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGuestDirectory_FailedOperationLeavesStoreUntouched(t *testing.T) {
	r := newRegistries()
	g := r.guest("1", "Ana")
	_, err := r.guests.Patch(ctx, g.ID, domain.GuestPatch{Name: ptr("Changed"), GuarantorID: ptr(int64(404))})
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.guests.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestGuestDirectory_ListInIDOrder(t *testing.T) {
	r := newRegistries()
	r.guest("b", "B")
	r.guest("a", "A")
	gs, err := r.guests.List(ctx)
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, "B", gs[0].Name)
	assert.Equal(t, "A", gs[1].Name)
}
