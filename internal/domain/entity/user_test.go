package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
}

func TestUser_StartSession(t *testing.T) {
	u := NewUser(1, 10)
	u.AddFinding(Finding{Label: LabelLeak})

	u.StartSession("Kitchen")
	require.Equal(t, StateAwaitingPhoto, u.State)
	require.Equal(t, "Kitchen", u.Room)
	require.Empty(t, u.Findings)
}

func TestUser_CloneIsIndependent(t *testing.T) {
	u := NewUser(1, 10)
	u.StartSession("Attic")
	u.AddFinding(Finding{Label: LabelMold})

	c := u.Clone()
	c.Findings[0].Label = LabelOK
	c.AddFinding(Finding{Label: LabelLeak})
	c.Room = "Hall"

	require.Equal(t, LabelMold, u.Findings[0].Label)
	require.Len(t, u.Findings, 1)
	require.Equal(t, "Attic", u.Room)
}
