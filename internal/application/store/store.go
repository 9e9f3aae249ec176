// Package store contiene el estado del portal y sus mutaciones.
//
// El estado vive en un contenedor explícito (Store) que se inyecta donde se necesita.
// Cada mutación se expresa como una Action interpretada por Reduce; el Store sella IDs y
// fechas, aplica la acción bajo un único escritor y persiste la instantánea completa.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/internal/domain/repository"
	"github.com/jhoicas/portal-admin/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Prefijos de ID por tipo de entidad.
const (
	PrefixUser     = "u"
	PrefixCompany  = "c"
	PrefixProduct  = "p"
	PrefixActivity = "a"
	PrefixMessage  = "m"
)

const persistTimeout = 5 * time.Second

// Store contenedor del estado del portal. Seguro para uso concurrente: un escritor a la vez.
type Store struct {
	mu    sync.RWMutex
	state entity.State
	repo  repository.StateRepository
	newID IDGenerator
	now   func() time.Time
	log   *logger.Logger
}

// Option configura un Store.
type Option func(*Store)

// WithRepository persiste la instantánea tras cada mutación.
func WithRepository(repo repository.StateRepository) Option {
	return func(s *Store) { s.repo = repo }
}

// WithIDGenerator reemplaza el generador de IDs.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock reemplaza el reloj usado para sellar entradas.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l.Component("store") }
}

// New construye un Store con el estado inicial dado.
func New(initial entity.State, opts ...Option) *Store {
	s := &Store{
		state: Clone(initial),
		newID: UUIDGenerator,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehidrata el estado desde el repositorio. Si no hay instantánea guardada se conserva
// el estado inicial y se persiste. Sin repositorio no hace nada.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loaded == nil {
		s.log.Info().Msg("sin instantánea previa, se usa el estado inicial")
		return s.repo.Save(ctx, &s.state)
	}
	s.state = *loaded
	s.log.Info().
		Int("users", len(s.state.Users)).
		Int("companies", len(s.state.Companies)).
		Int("products", len(s.state.Products)).
		Msg("estado rehidratado")
	return nil
}

// Snapshot devuelve una copia profunda del estado actual.
func (s *Store) Snapshot() entity.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.state)
}

// Dispatch aplica una acción arbitraria. Los métodos de abajo sellan sus acciones antes de llamarlo.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(a)
}

// apply requiere s.mu tomado en escritura.
func (s *Store) apply(a Action) {
	s.state = Reduce(s.state, a)
	s.persist(a)
}

func (s *Store) persist(a Action) {
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, &s.state); err != nil {
		s.log.Error().Err(err).Str("action", a.actionName()).Msg("persistir instantánea")
	}
}

func (s *Store) stamp(prefix string) Stamp {
	return Stamp{ID: s.newID(prefix), At: s.now()}
}

// ── Sesión ────────────────────────────────────────────────────────────────────

// Login abre sesión con el usuario Activo cuyo email coincide exactamente.
// Si el usuario tiene hash de contraseña, password debe coincidir; si no lo tiene se acepta cualquiera.
// Devuelve false sin tocar la sesión cuando no hay coincidencia.
func (s *Store) Login(email, password string) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := findActiveByEmail(s.state.Users, email)
	if !ok {
		return entity.User{}, false
	}
	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return entity.User{}, false
		}
	} else {
		s.log.Warn().Str("user_id", user.ID).Msg("login sin credencial almacenada")
	}
	s.apply(Login{Email: email, Log: s.stamp(PrefixActivity)})
	return user, true
}

// Logout cierra la sesión: registra "logout" si había usuario y limpia usuario y empresa activa.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(Logout{Log: s.stamp(PrefixActivity)})
}

// LogoutAs registra la salida del actor en su empresa activa. La sesión del store solo se
// limpia si pertenece a ese usuario.
func (s *Store) LogoutAs(actor Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(Logout{By: &actor, Log: s.stamp(PrefixActivity)})
}

// SetCurrentCompany cambia la empresa activa si existe y hay sesión. Devuelve si hubo cambio.
func (s *Store) SetCurrentCompany(companyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findCompany(s.state.Companies, companyID); !ok || s.state.CurrentUser == nil {
		return false
	}
	s.apply(SetCurrentCompany{CompanyID: companyID, Log: s.stamp(PrefixActivity)})
	return true
}

// SetCurrentCompanyAs registra el cambio de empresa del actor sin depender de la sesión del store.
// Devuelve false si la empresa o el usuario no existen.
func (s *Store) SetCurrentCompanyAs(actor Actor, companyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findCompany(s.state.Companies, companyID); !ok {
		return false
	}
	if _, ok := findUser(s.state.Users, actor.UserID); !ok {
		return false
	}
	s.apply(SetCurrentCompany{CompanyID: companyID, By: &actor, Log: s.stamp(PrefixActivity)})
	return true
}

// Session devuelve una copia de la sesión actual.
func (s *Store) Session() entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.state.Session)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// AddUser asigna ID y agrega el usuario; la creación se atribuye a la sesión activa.
func (s *Store) AddUser(u entity.User) entity.User {
	return s.addUser(u, nil)
}

// AddUserAs como AddUser pero atribuye la creación al actor.
func (s *Store) AddUserAs(actor Actor, u entity.User) entity.User {
	return s.addUser(u, &actor)
}

func (s *Store) addUser(u entity.User, by *Actor) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.newID(PrefixUser)
	s.apply(AddUser{User: u, By: by, Log: s.stamp(PrefixActivity)})
	return u
}

// UpdateUser aplica el patch. Devuelve false si el ID no existe.
func (s *Store) UpdateUser(id string, patch entity.UserPatch) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findUser(s.state.Users, id); !ok {
		return entity.User{}, false
	}
	s.apply(UpdateUser{ID: id, Patch: patch})
	return findUser(s.state.Users, id)
}

// DeleteUser elimina el usuario. Devuelve false si no existía.
func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findUser(s.state.Users, id); !ok {
		return false
	}
	s.apply(DeleteUser{ID: id})
	return true
}

// FindUser busca un usuario por ID.
func (s *Store) FindUser(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findUser(s.state.Users, id)
}

// Users lista los usuarios de una empresa; companyID vacío lista todos.
func (s *Store) Users(companyID string) []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.state.Users, func(u entity.User) bool { return companyID == "" || u.CompanyID == companyID })
}

// ── Empresas ──────────────────────────────────────────────────────────────────

// AddCompany asigna ID y agrega la empresa.
func (s *Store) AddCompany(c entity.Company) entity.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID(PrefixCompany)
	s.apply(AddCompany{Company: c})
	return c
}

// UpdateCompany aplica el patch. Devuelve false si el ID no existe.
func (s *Store) UpdateCompany(id string, patch entity.CompanyPatch) (entity.Company, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findCompany(s.state.Companies, id); !ok {
		return entity.Company{}, false
	}
	s.apply(UpdateCompany{ID: id, Patch: patch})
	return findCompany(s.state.Companies, id)
}

// DeleteCompany elimina una empresa sin dependientes.
// Devuelve domain.ErrNotFound si no existe y domain.ErrConflict si aún la referencian
// usuarios, productos, reportes o la sesión activa.
func (s *Store) DeleteCompany(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findCompany(s.state.Companies, id); !ok {
		return domain.ErrNotFound
	}
	if err := s.companyReferences(id); err != nil {
		return err
	}
	s.apply(DeleteCompany{ID: id})
	return nil
}

func (s *Store) companyReferences(id string) error {
	for _, u := range s.state.Users {
		if u.CompanyID == id {
			return errors.Join(domain.ErrConflict, errors.New("la empresa tiene usuarios"))
		}
	}
	for _, p := range s.state.Products {
		if p.CompanyID == id {
			return errors.Join(domain.ErrConflict, errors.New("la empresa tiene productos"))
		}
	}
	for _, r := range s.state.Reports {
		if r.CompanyID == id {
			return errors.Join(domain.ErrConflict, errors.New("la empresa tiene reportes"))
		}
	}
	if s.state.CurrentCompany != nil && s.state.CurrentCompany.ID == id {
		return errors.Join(domain.ErrConflict, errors.New("es la empresa activa de la sesión"))
	}
	return nil
}

// FindCompany busca una empresa por ID.
func (s *Store) FindCompany(id string) (entity.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findCompany(s.state.Companies, id)
}

// Companies lista todas las empresas.
func (s *Store) Companies() []entity.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Company(nil), s.state.Companies...)
}

// ── Productos ─────────────────────────────────────────────────────────────────

// AddProduct asigna ID y agrega el producto. Status se guarda tal como llega.
func (s *Store) AddProduct(p entity.Product) entity.Product {
	return s.addProduct(p, nil)
}

// AddProductAs como AddProduct pero atribuye la creación al actor.
func (s *Store) AddProductAs(actor Actor, p entity.Product) entity.Product {
	return s.addProduct(p, &actor)
}

func (s *Store) addProduct(p entity.Product, by *Actor) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.newID(PrefixProduct)
	s.apply(AddProduct{Product: p, By: by, Log: s.stamp(PrefixActivity)})
	return p
}

// UpdateProduct aplica el patch. Cambiar Stock no recalcula Status.
func (s *Store) UpdateProduct(id string, patch entity.ProductPatch) (entity.Product, bool) {
	return s.updateProduct(id, patch, nil)
}

// UpdateProductAs como UpdateProduct pero atribuye el cambio al actor.
func (s *Store) UpdateProductAs(actor Actor, id string, patch entity.ProductPatch) (entity.Product, bool) {
	return s.updateProduct(id, patch, &actor)
}

func (s *Store) updateProduct(id string, patch entity.ProductPatch, by *Actor) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findProduct(s.state.Products, id); !ok {
		return entity.Product{}, false
	}
	s.apply(UpdateProduct{ID: id, Patch: patch, By: by, Log: s.stamp(PrefixActivity)})
	return findProduct(s.state.Products, id)
}

// DeleteProduct elimina el producto. Devuelve false si no existía.
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findProduct(s.state.Products, id); !ok {
		return false
	}
	s.apply(DeleteProduct{ID: id})
	return true
}

// FindProduct busca un producto por ID.
func (s *Store) FindProduct(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findProduct(s.state.Products, id)
}

// Products lista los productos de una empresa; companyID vacío lista todos.
func (s *Store) Products(companyID string) []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.state.Products, func(p entity.Product) bool { return companyID == "" || p.CompanyID == companyID })
}

// Reports lista los descriptores de reporte de una empresa.
func (s *Store) Reports(companyID string) []entity.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.state.Reports, func(r entity.Report) bool { return r.CompanyID == companyID })
}

// ── Registro de actividad ─────────────────────────────────────────────────────

// AddActivityLog sella la entrada con ID y fecha y la antepone al registro (máximo MaxActivityLog).
func (s *Store) AddActivityLog(entry entity.ActivityLog) entity.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stamp(PrefixActivity)
	entry.ID, entry.Timestamp = st.ID, st.At
	s.apply(AddActivityLog{Entry: entry})
	return entry
}

// Activity devuelve las entradas de una empresa, más nuevas primero. limit <= 0 no limita.
func (s *Store) Activity(companyID string, limit int) []entity.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := filter(s.state.ActivityLog, func(l entity.ActivityLog) bool { return companyID == "" || l.CompanyID == companyID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SendSMS registra el envío en la actividad de la sesión. No entrega nada.
func (s *Store) SendSMS(to, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(SendSMS{To: to, Message: message, Log: s.stamp(PrefixActivity)})
}

// SendSMSAs registra el envío en la actividad del actor.
func (s *Store) SendSMSAs(actor Actor, to, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(SendSMS{To: to, Message: message, By: &actor, Log: s.stamp(PrefixActivity)})
}

// ── Chat ──────────────────────────────────────────────────────────────────────

// AddChatMessage sella el mensaje con ID y fecha y lo agrega al final.
func (s *Store) AddChatMessage(m entity.ChatMessage) entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stamp(PrefixMessage)
	m.ID, m.Timestamp = st.ID, st.At
	s.apply(AddChatMessage{Message: m})
	return m
}

// ClearChatMessages elimina todos los mensajes de la empresa y devuelve cuántos había.
func (s *Store) ClearChatMessages(companyID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.state.ChatMessages)
	s.apply(ClearChatMessages{CompanyID: companyID})
	return before - len(s.state.ChatMessages)
}

// ClearConversation elimina los mensajes de una conversación y devuelve cuántos había.
func (s *Store) ClearConversation(companyID, conversationID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.state.ChatMessages)
	s.apply(ClearConversation{CompanyID: companyID, ConversationID: conversationID})
	return before - len(s.state.ChatMessages)
}

// ChatMessages devuelve los mensajes de una conversación de la empresa en orden de llegada.
func (s *Store) ChatMessages(companyID, conversationID string) []entity.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.state.ChatMessages, func(m entity.ChatMessage) bool {
		return m.CompanyID == companyID && m.ConversationID == conversationID
	})
}
