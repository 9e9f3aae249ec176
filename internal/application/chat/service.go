// Package chat implementa el widget de soporte: conversaciones por empresa y un bot que
// responde con frases predefinidas tras una demora.
package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/pkg/logger"
)

// DefaultConversationID conversación que toda empresa tiene y no se puede eliminar.
const (
	DefaultConversationID    = ""
	DefaultConversationTitle = "Soporte Técnico"
	DefaultBotDelay          = time.Second
)

// BotResponses respuestas posibles del bot.
var BotResponses = []string{
	"Entiendo tu consulta. ¿Podrías darme más detalles?",
	"Déjame verificar esa información para ti.",
	"He registrado tu solicitud. Nuestro equipo la revisará pronto.",
	"Perfecto, ¿hay algo más en lo que pueda ayudarte?",
	"Gracias por contactarnos. ¿Necesitas ayuda con algo más?",
}

// QuickReplies mensajes sugeridos al usuario.
var QuickReplies = []string{
	"Necesito ayuda con el inventario",
	"¿Cómo genero un reporte?",
	"Tengo un problema técnico",
}

// Conversation metadatos de una conversación. Vive en memoria; al arrancar se reconstruye
// a partir de los ConversationID de los mensajes persistidos (el título no se persiste).
type Conversation struct {
	ID        string
	Title     string
	CompanyID string
	CreatedAt time.Time
}

// ConversationSummary conversación más datos derivados de sus mensajes.
type ConversationSummary struct {
	Conversation
	Messages    int
	LastMessage string
	UpdatedAt   time.Time
}

type convKey struct {
	companyID      string
	conversationID string
}

// pendingReply respuesta del bot programada; su puntero identifica al timer.
type pendingReply struct {
	timer *time.Timer
}

// Service coordina mensajes y respuestas diferidas.
// Orden de locks: s.mu y luego el lock interno del Store; el Store nunca llama al servicio.
type Service struct {
	store *store.Store
	delay time.Duration
	pick  func(n int) int
	now   func() time.Time
	newID store.IDGenerator
	log   *logger.Logger

	mu      sync.Mutex
	convs   map[string][]Conversation
	pending map[convKey]map[*pendingReply]struct{}
	closed  bool
}

// Option configura el servicio.
type Option func(*Service)

// WithBotDelay cambia la demora de la respuesta del bot.
func WithBotDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithPicker reemplaza la elección aleatoria de respuesta (tests).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l.Component("chat") }
}

// NewService construye el servicio sobre el store.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		delay:   DefaultBotDelay,
		pick:    rand.Intn,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   store.UUIDGenerator,
		log:     logger.Nop(),
		convs:   make(map[string][]Conversation),
		pending: make(map[convKey]map[*pendingReply]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

// restore recupera las conversaciones con mensajes en el store, en orden de su primer mensaje.
func (s *Service) restore() {
	seen := make(map[convKey]bool)
	for _, m := range s.store.Snapshot().ChatMessages {
		key := convKey{m.CompanyID, m.ConversationID}
		if m.ConversationID == DefaultConversationID || seen[key] {
			continue
		}
		seen[key] = true
		s.convs[m.CompanyID] = append(s.convs[m.CompanyID], Conversation{
			ID:        m.ConversationID,
			Title:     fmt.Sprintf("Conversación %d", len(s.convs[m.CompanyID])+2),
			CompanyID: m.CompanyID,
			CreatedAt: m.Timestamp,
		})
	}
	if len(seen) > 0 {
		s.log.Info().Int("conversations", len(seen)).Msg("conversaciones restauradas")
	}
}

// Conversations lista las conversaciones de la empresa; la predeterminada va primero.
func (s *Service) Conversations(companyID string) []ConversationSummary {
	s.mu.Lock()
	convs := append([]Conversation{s.defaultConversation(companyID)}, s.convs[companyID]...)
	s.mu.Unlock()

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		msgs := s.store.ChatMessages(companyID, c.ID)
		sum := ConversationSummary{Conversation: c, Messages: len(msgs), UpdatedAt: c.CreatedAt}
		if n := len(msgs); n > 0 {
			sum.LastMessage = msgs[n-1].Text
			sum.UpdatedAt = msgs[n-1].Timestamp
		}
		out = append(out, sum)
	}
	return out
}

// CreateConversation abre una conversación nueva. Sin título usa "Conversación N".
func (s *Service) CreateConversation(companyID, title string) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Conversación %d", len(s.convs[companyID])+2)
	}
	c := Conversation{
		ID:        s.newID("conv-"),
		Title:     title,
		CompanyID: companyID,
		CreatedAt: s.now(),
	}
	s.convs[companyID] = append(s.convs[companyID], c)
	return c
}

// Messages devuelve los mensajes de una conversación.
func (s *Service) Messages(companyID, conversationID string) ([]entity.ChatMessage, error) {
	s.mu.Lock()
	ok := s.exists(companyID, conversationID)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.store.ChatMessages(companyID, conversationID), nil
}

// Send agrega el mensaje del usuario y programa la respuesta del bot.
func (s *Service) Send(companyID, conversationID, text string) (entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entity.ChatMessage{}, fmt.Errorf("%w: mensaje vacío", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entity.ChatMessage{}, fmt.Errorf("%w: chat cerrado", domain.ErrConflict)
	}
	if !s.exists(companyID, conversationID) {
		return entity.ChatMessage{}, domain.ErrNotFound
	}
	msg := s.store.AddChatMessage(entity.ChatMessage{
		Text:           text,
		Sender:         entity.SenderUser,
		CompanyID:      companyID,
		ConversationID: conversationID,
	})
	s.schedule(convKey{companyID, conversationID})
	return msg, nil
}

// schedule requiere s.mu tomado.
func (s *Service) schedule(key convKey) {
	p := &pendingReply{}
	if s.pending[key] == nil {
		s.pending[key] = make(map[*pendingReply]struct{})
	}
	s.pending[key][p] = struct{}{}
	p.timer = time.AfterFunc(s.delay, func() { s.reply(key, p) })
}

func (s *Service) reply(key convKey, p *pendingReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.pending[key]
	if !ok {
		return
	}
	if _, ok := set[p]; !ok {
		return
	}
	delete(set, p)
	if len(set) == 0 {
		delete(s.pending, key)
	}
	text := BotResponses[s.pick(len(BotResponses))]
	s.store.AddChatMessage(entity.ChatMessage{
		Text:           text,
		Sender:         entity.SenderBot,
		CompanyID:      key.companyID,
		ConversationID: key.conversationID,
	})
	s.log.Debug().Str("company_id", key.companyID).Str("conversation_id", key.conversationID).Msg("respuesta del bot")
}

// DeleteConversation cancela las respuestas pendientes y borra los mensajes. La conversación
// predeterminada se vacía pero sigue existiendo. Devuelve cuántos mensajes se borraron.
func (s *Service) DeleteConversation(companyID, conversationID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.exists(companyID, conversationID) {
		return 0, domain.ErrNotFound
	}
	s.cancel(convKey{companyID, conversationID})
	if conversationID != DefaultConversationID {
		s.convs[companyID] = removeConversation(s.convs[companyID], conversationID)
	}
	return s.store.ClearConversation(companyID, conversationID), nil
}

// ClearCompany borra todos los mensajes de la empresa y cancela sus respuestas pendientes.
func (s *Service) ClearCompany(companyID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.pending {
		if key.companyID == companyID {
			s.cancel(key)
		}
	}
	return s.store.ClearChatMessages(companyID)
}

// DeleteCompany ejecuta del (la baja en el store) con el chat retenido y, si tuvo éxito,
// cancela las respuestas pendientes de la empresa y olvida sus conversaciones.
// Ninguna respuesta del bot puede escribirse entre la baja y la cancelación.
func (s *Service) DeleteCompany(companyID string, del func(string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := del(companyID); err != nil {
		return err
	}
	for key := range s.pending {
		if key.companyID == companyID {
			s.cancel(key)
		}
	}
	delete(s.convs, companyID)
	return nil
}

// Pending cuántas respuestas del bot siguen programadas para la conversación.
func (s *Service) Pending(companyID, conversationID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[convKey{companyID, conversationID}])
}

// Close cancela todas las respuestas pendientes; Send falla a partir de aquí.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for key := range s.pending {
		s.cancel(key)
	}
}

// cancel requiere s.mu tomado. Un callback ya disparado no encuentra su entrada y no responde.
func (s *Service) cancel(key convKey) {
	for p := range s.pending[key] {
		p.timer.Stop()
	}
	delete(s.pending, key)
}

func (s *Service) defaultConversation(companyID string) Conversation {
	return Conversation{ID: DefaultConversationID, Title: DefaultConversationTitle, CompanyID: companyID}
}

func (s *Service) exists(companyID, conversationID string) bool {
	if conversationID == DefaultConversationID {
		return true
	}
	for _, c := range s.convs[companyID] {
		if c.ID == conversationID {
			return true
		}
	}
	return false
}

func removeConversation(list []Conversation, id string) []Conversation {
	out := make([]Conversation, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
