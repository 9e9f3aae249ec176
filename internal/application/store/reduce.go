package store

import (
	"fmt"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// MaxActivityLog cantidad máxima de entradas que conserva el registro de actividad.
const MaxActivityLog = 50

// smsPreviewLen caracteres del mensaje que se copian en la descripción del SMS.
const smsPreviewLen = 30

// Reduce aplica la acción sobre s y devuelve el nuevo estado.
// Nunca modifica los slices de s: cada colección afectada se reconstruye.
func Reduce(s entity.State, a Action) entity.State {
	switch act := a.(type) {
	case Login:
		return reduceLogin(s, act)
	case Logout:
		return reduceLogout(s, act)
	case SetCurrentCompany:
		return reduceSetCurrentCompany(s, act)
	case AddUser:
		s.Users = appendCopy(s.Users, act.User)
		return withActivity(s, act.By, act.Log, entity.ActivityUserCreated,
			fmt.Sprintf("Se creó usuario \"%s\"", act.User.Name))
	case UpdateUser:
		return reduceUpdateUser(s, act)
	case DeleteUser:
		s.Users = filter(s.Users, func(u entity.User) bool { return u.ID != act.ID })
		if s.CurrentUser != nil && s.CurrentUser.ID == act.ID {
			s.Session = entity.Session{}
		}
		return s
	case AddCompany:
		s.Companies = appendCopy(s.Companies, act.Company)
		return s
	case UpdateCompany:
		return reduceUpdateCompany(s, act)
	case DeleteCompany:
		s.Companies = filter(s.Companies, func(c entity.Company) bool { return c.ID != act.ID })
		s.ChatMessages = filter(s.ChatMessages, func(m entity.ChatMessage) bool { return m.CompanyID != act.ID })
		return s
	case AddProduct:
		s.Products = appendCopy(s.Products, act.Product)
		return withActivity(s, act.By, act.Log, entity.ActivityProductUpdated,
			fmt.Sprintf("Se creó producto \"%s\"", act.Product.Name))
	case UpdateProduct:
		return reduceUpdateProduct(s, act)
	case DeleteProduct:
		s.Products = filter(s.Products, func(p entity.Product) bool { return p.ID != act.ID })
		return s
	case AddActivityLog:
		return prependActivity(s, act.Entry)
	case AddChatMessage:
		s.ChatMessages = appendCopy(s.ChatMessages, act.Message)
		return s
	case ClearChatMessages:
		s.ChatMessages = filter(s.ChatMessages, func(m entity.ChatMessage) bool { return m.CompanyID != act.CompanyID })
		return s
	case ClearConversation:
		s.ChatMessages = filter(s.ChatMessages, func(m entity.ChatMessage) bool {
			return m.CompanyID != act.CompanyID || m.ConversationID != act.ConversationID
		})
		return s
	case SendSMS:
		return withActivity(s, act.By, act.Log, entity.ActivityUserCreated,
			fmt.Sprintf("SMS enviado a %s: \"%s...\"", act.To, preview(act.Message, smsPreviewLen)))
	default:
		return s
	}
}

func reduceLogin(s entity.State, act Login) entity.State {
	user, ok := findActiveByEmail(s.Users, act.Email)
	if !ok {
		return s
	}
	s.Session = entity.Session{CurrentUser: &user}
	if company, ok := findCompany(s.Companies, user.CompanyID); ok {
		s.CurrentCompany = &company
	}
	return prependActivity(s, entity.ActivityLog{
		ID:          act.Log.ID,
		Type:        entity.ActivityLogin,
		Description: user.Name + " inició sesión",
		CompanyID:   user.CompanyID,
		UserID:      user.ID,
		Timestamp:   act.Log.At,
	})
}

func reduceLogout(s entity.State, act Logout) entity.State {
	if act.By == nil {
		if s.CurrentUser == nil {
			return s
		}
		user := *s.CurrentUser
		s = prependActivity(s, entity.ActivityLog{
			ID:          act.Log.ID,
			Type:        entity.ActivityLogout,
			Description: user.Name + " cerró sesión",
			CompanyID:   user.CompanyID,
			UserID:      user.ID,
			Timestamp:   act.Log.At,
		})
		s.Session = entity.Session{}
		return s
	}

	user, ok := findUser(s.Users, act.By.UserID)
	if !ok {
		return s
	}
	s = prependActivity(s, entity.ActivityLog{
		ID:          act.Log.ID,
		Type:        entity.ActivityLogout,
		Description: user.Name + " cerró sesión",
		CompanyID:   act.By.CompanyID,
		UserID:      user.ID,
		Timestamp:   act.Log.At,
	})
	if s.CurrentUser != nil && s.CurrentUser.ID == user.ID {
		s.Session = entity.Session{}
	}
	return s
}

func reduceSetCurrentCompany(s entity.State, act SetCurrentCompany) entity.State {
	company, ok := findCompany(s.Companies, act.CompanyID)
	if !ok {
		return s
	}
	var userID string
	switch {
	case act.By != nil:
		if _, ok := findUser(s.Users, act.By.UserID); !ok {
			return s
		}
		userID = act.By.UserID
	case s.CurrentUser != nil:
		userID = s.CurrentUser.ID
	default:
		return s
	}
	if s.CurrentUser != nil && s.CurrentUser.ID == userID {
		s.CurrentCompany = &company
	}
	return prependActivity(s, entity.ActivityLog{
		ID:          act.Log.ID,
		Type:        entity.ActivityCompanyChanged,
		Description: fmt.Sprintf("Se cambió a empresa \"%s\"", company.Name),
		CompanyID:   company.ID,
		UserID:      userID,
		Timestamp:   act.Log.At,
	})
}

func reduceUpdateUser(s entity.State, act UpdateUser) entity.State {
	s.Users = mapWhere(s.Users, func(u entity.User) bool { return u.ID == act.ID }, act.Patch.Apply)
	if s.CurrentUser != nil && s.CurrentUser.ID == act.ID {
		if u, ok := findUser(s.Users, act.ID); ok {
			s.CurrentUser = &u
		}
	}
	return s
}

func reduceUpdateCompany(s entity.State, act UpdateCompany) entity.State {
	s.Companies = mapWhere(s.Companies, func(c entity.Company) bool { return c.ID == act.ID }, act.Patch.Apply)
	if s.CurrentCompany != nil && s.CurrentCompany.ID == act.ID {
		if c, ok := findCompany(s.Companies, act.ID); ok {
			s.CurrentCompany = &c
		}
	}
	return s
}

func reduceUpdateProduct(s entity.State, act UpdateProduct) entity.State {
	s.Products = mapWhere(s.Products, func(p entity.Product) bool { return p.ID == act.ID }, act.Patch.Apply)
	product, ok := findProduct(s.Products, act.ID)
	if !ok {
		return s
	}
	return withActivity(s, act.By, act.Log, entity.ActivityProductUpdated,
		fmt.Sprintf("Se actualizó producto \"%s\"", product.Name))
}

// withActivity registra un evento atribuido a by o, sin él, a la sesión activa.
// Sin ninguno de los dos no se registra nada.
func withActivity(s entity.State, by *Actor, st Stamp, kind, description string) entity.State {
	actor, ok := attribution(s, by)
	if !ok {
		return s
	}
	return prependActivity(s, entity.ActivityLog{
		ID:          st.ID,
		Type:        kind,
		Description: description,
		CompanyID:   actor.CompanyID,
		UserID:      actor.UserID,
		Timestamp:   st.At,
	})
}

func attribution(s entity.State, by *Actor) (Actor, bool) {
	if by != nil {
		return *by, by.UserID != "" && by.CompanyID != ""
	}
	if !s.Active() {
		return Actor{}, false
	}
	return Actor{UserID: s.CurrentUser.ID, CompanyID: s.CurrentCompany.ID}, true
}

// prependActivity es el único punto que escribe el registro: más nuevo primero, máximo MaxActivityLog.
func prependActivity(s entity.State, entry entity.ActivityLog) entity.State {
	n := len(s.ActivityLog) + 1
	if n > MaxActivityLog {
		n = MaxActivityLog
	}
	log := make([]entity.ActivityLog, 0, n)
	log = append(log, entry)
	log = append(log, s.ActivityLog[:n-1]...)
	s.ActivityLog = log
	return s
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func appendCopy[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func mapWhere[T any](list []T, match func(T) bool, fn func(T) T) []T {
	out := make([]T, len(list))
	for i, item := range list {
		if match(item) {
			item = fn(item)
		}
		out[i] = item
	}
	return out
}

func findActiveByEmail(users []entity.User, email string) (entity.User, bool) {
	for _, u := range users {
		if u.Email == email && u.IsActive() {
			return u, true
		}
	}
	return entity.User{}, false
}

func findUser(users []entity.User, id string) (entity.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}

func findCompany(companies []entity.Company, id string) (entity.Company, bool) {
	for _, c := range companies {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Company{}, false
}

func findProduct(products []entity.Product, id string) (entity.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
