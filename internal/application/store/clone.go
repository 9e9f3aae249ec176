package store

import "github.com/jhoicas/portal-admin/internal/domain/entity"

// Clone copia el estado sin compartir slices ni punteros de sesión con el original.
func Clone(s entity.State) entity.State {
	return entity.State{
		Session:      cloneSession(s.Session),
		Users:        cloneSlice(s.Users),
		Companies:    cloneSlice(s.Companies),
		Products:     cloneSlice(s.Products),
		Reports:      cloneSlice(s.Reports),
		ActivityLog:  cloneSlice(s.ActivityLog),
		ChatMessages: cloneSlice(s.ChatMessages),
	}
}

func cloneSession(s entity.Session) entity.Session {
	var out entity.Session
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	if s.CurrentCompany != nil {
		c := *s.CurrentCompany
		out.CurrentCompany = &c
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
