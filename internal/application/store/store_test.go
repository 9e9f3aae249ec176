package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// counterIDs genera IDs deterministas: u1001, a1002, ...
func counterIDs() store.IDGenerator {
	var mu sync.Mutex
	n := 1000
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newSeeded(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	base := []store.Option{
		store.WithIDGenerator(counterIDs()),
		store.WithClock(func() time.Time { return testNow }),
	}
	return store.New(store.Seed(testNow), append(base, opts...)...)
}

type memRepo struct {
	mu    sync.Mutex
	saved []entity.State
	state *entity.State
}

func (r *memRepo) Load(context.Context) (*entity.State, error) { return r.state, nil }

func (r *memRepo) Save(_ context.Context, s *entity.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, store.Clone(*s))
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_UsuarioActivoCualquierPassword(t *testing.T) {
	s := newSeeded(t)

	user, ok := s.Login("admin@empresa.com", "lo-que-sea")
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)

	sess := s.Session()
	require.NotNil(t, sess.CurrentUser)
	require.NotNil(t, sess.CurrentCompany)
	assert.Equal(t, "u1", sess.CurrentUser.ID)
	assert.Equal(t, "c1", sess.CurrentCompany.ID)

	logs := s.Activity("c1", 1)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActivityLogin, logs[0].Type)
	assert.Equal(t, "Carlos Admin inició sesión", logs[0].Description)
	assert.Equal(t, testNow, logs[0].Timestamp)
}

func TestLogin_UsuarioInactivoFalla(t *testing.T) {
	s := newSeeded(t)
	before := s.Snapshot()

	_, ok := s.Login("pedro@empresa.com", "x")
	assert.False(t, ok)
	assert.Equal(t, before, s.Snapshot(), "un login fallido no debe tocar el estado")
}

func TestLogin_FallidoConservaSesionPrevia(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("juan@empresa.com", "x")
	require.True(t, ok)

	_, ok = s.Login("nadie@empresa.com", "x")
	assert.False(t, ok)
	assert.Equal(t, "u3", s.Session().CurrentUser.ID)
	assert.Equal(t, "c2", s.Session().CurrentCompany.ID)
}

func TestLogin_EmailExactoSinNormalizar(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("ADMIN@empresa.com", "x")
	assert.False(t, ok)
}

func TestLogin_ConHashBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	s := newSeeded(t)
	h := string(hash)
	_, ok := s.UpdateUser("u2", entity.UserPatch{PasswordHash: &h})
	require.True(t, ok)

	_, ok = s.Login("maria@empresa.com", "otra")
	assert.False(t, ok)
	_, ok = s.Login("maria@empresa.com", "secreto123")
	assert.True(t, ok)
}

func TestLogout_LimpiaSesionYRegistra(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("maria@empresa.com", "x")
	require.True(t, ok)

	s.Logout()

	sess := s.Session()
	assert.Nil(t, sess.CurrentUser)
	assert.Nil(t, sess.CurrentCompany)
	latest := s.Activity("", 1)[0]
	assert.Equal(t, entity.ActivityLogout, latest.Type)
	assert.Equal(t, "u2", latest.UserID)
}

func TestLogout_SinSesionNoRegistra(t *testing.T) {
	s := newSeeded(t)
	before := len(s.Activity("", 0))
	s.Logout()
	assert.Len(t, s.Activity("", 0), before)
}

func TestSetCurrentCompany(t *testing.T) {
	s := newSeeded(t)

	assert.False(t, s.SetCurrentCompany("c2"), "sin sesión es un no-op")
	assert.Nil(t, s.Session().CurrentCompany)

	_, ok := s.Login("admin@empresa.com", "x")
	require.True(t, ok)
	assert.False(t, s.SetCurrentCompany("c-inexistente"))
	assert.Equal(t, "c1", s.Session().CurrentCompany.ID)

	require.True(t, s.SetCurrentCompany("c2"))
	assert.Equal(t, "c2", s.Session().CurrentCompany.ID)
	latest := s.Activity("c2", 1)[0]
	assert.Equal(t, entity.ActivityCompanyChanged, latest.Type)
	assert.Equal(t, `Se cambió a empresa "Empresa B"`, latest.Description)
	assert.Equal(t, "u1", latest.UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAddUser_RegistraSoloConSesion(t *testing.T) {
	s := newSeeded(t)
	logsBefore := len(s.Activity("", 0))

	created := s.AddUser(entity.User{Name: "Sin Sesión", Email: "x@empresa.com", CompanyID: "c1", Status: entity.UserStatusActive})
	assert.NotEmpty(t, created.ID)
	assert.Len(t, s.Activity("", 0), logsBefore)

	_, ok := s.Login("admin@empresa.com", "x")
	require.True(t, ok)
	s.AddUser(entity.User{Name: "Lucía", Email: "lucia@empresa.com", CompanyID: "c1", Status: entity.UserStatusActive})
	latest := s.Activity("c1", 1)[0]
	assert.Equal(t, entity.ActivityUserCreated, latest.Type)
	assert.Equal(t, `Se creó usuario "Lucía"`, latest.Description)
}

// Con actor explícito la actividad va a su empresa, no a la de la sesión del store.
func TestMutacionesAs_AtribuyenAlActor(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("juan@empresa.com", "x")
	require.True(t, ok)
	u1 := store.Actor{UserID: "u1", CompanyID: "c1"}

	s.AddUserAs(u1, entity.User{Name: "Lucía", Email: "lucia@empresa.com", CompanyID: "c1", Status: entity.UserStatusActive})
	p := s.AddProductAs(u1, entity.Product{Name: "Secreto C1", CompanyID: "c1"})
	s.UpdateProductAs(u1, p.ID, entity.ProductPatch{Name: ptr("Secreto C1 v2")})
	s.SendSMSAs(u1, "+52 1", "hola")

	c1 := s.Activity("c1", 4)
	require.Len(t, c1, 4)
	for _, l := range c1 {
		assert.Equal(t, "u1", l.UserID)
		assert.Equal(t, "c1", l.CompanyID)
	}
	assert.Equal(t, entity.ActivityLogin, s.Activity("c2", 1)[0].Type, "nada nuevo en c2")
}

func TestMutacionesAs_SinSesionTambienRegistran(t *testing.T) {
	s := newSeeded(t)
	before := len(s.Activity("", 0))

	s.AddProductAs(store.Actor{UserID: "u2", CompanyID: "c1"}, entity.Product{Name: "Teclado", CompanyID: "c1"})

	assert.Len(t, s.Activity("", 0), before+1)
	assert.Equal(t, "u2", s.Activity("c1", 1)[0].UserID)
}

func TestLogoutAs(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("juan@empresa.com", "x")
	require.True(t, ok)

	s.LogoutAs(store.Actor{UserID: "u1", CompanyID: "c1"})

	latest := s.Activity("c1", 1)[0]
	assert.Equal(t, entity.ActivityLogout, latest.Type)
	assert.Equal(t, "Carlos Admin cerró sesión", latest.Description)
	assert.Equal(t, "u3", s.Session().CurrentUser.ID, "la sesión de otro usuario sigue abierta")

	s.LogoutAs(store.Actor{UserID: "u3", CompanyID: "c2"})
	assert.False(t, s.Session().Active())
	assert.Equal(t, "Juan Viewer cerró sesión", s.Activity("c2", 1)[0].Description)
}

func TestSetCurrentCompanyAs(t *testing.T) {
	s := newSeeded(t)
	u1 := store.Actor{UserID: "u1", CompanyID: "c1"}

	assert.False(t, s.SetCurrentCompanyAs(u1, "c9"))
	assert.False(t, s.SetCurrentCompanyAs(store.Actor{UserID: "u99"}, "c2"))

	require.True(t, s.SetCurrentCompanyAs(u1, "c2"), "no requiere sesión en el store")
	latest := s.Activity("c2", 1)[0]
	assert.Equal(t, entity.ActivityCompanyChanged, latest.Type)
	assert.Equal(t, "u1", latest.UserID)
	assert.Nil(t, s.Session().CurrentCompany)
}

func TestAdd_IDsUnicosEnElMismoInstante(t *testing.T) {
	s := store.New(store.Seed(testNow), store.WithClock(func() time.Time { return testNow }))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p := s.AddProduct(entity.Product{Name: "p", CompanyID: "c1"})
		assert.Regexp(t, `^p[0-9a-f-]{36}$`, p.ID)
		assert.False(t, seen[p.ID], "ID repetido: %s", p.ID)
		seen[p.ID] = true
	}
}

func TestDeleteUser_SoloQuitaUno(t *testing.T) {
	s := newSeeded(t)
	before := s.Users("")

	require.True(t, s.DeleteUser("u3"))

	_, found := s.FindUser("u3")
	assert.False(t, found)
	after := s.Users("")
	assert.Len(t, after, len(before)-1)
	for _, u := range before {
		if u.ID == "u3" {
			continue
		}
		got, ok := s.FindUser(u.ID)
		require.True(t, ok)
		assert.Equal(t, u, got)
	}
	assert.False(t, s.DeleteUser("u3"), "borrar de nuevo no encuentra nada")
}

func TestDeleteUser_UsuarioDeLaSesionCierraSesion(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("ana@empresa.com", "x")
	require.True(t, ok)
	require.True(t, s.DeleteUser("u4"))
	assert.False(t, s.Session().Active())
}

func TestUpdateUser_MergeSuperficial(t *testing.T) {
	s := newSeeded(t)
	name := "María Pérez"
	updated, ok := s.UpdateUser("u2", entity.UserPatch{Name: &name})
	require.True(t, ok)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "maria@empresa.com", updated.Email)
	assert.Equal(t, entity.RoleOperativo, updated.Role)

	_, ok = s.UpdateUser("u-no", entity.UserPatch{Name: &name})
	assert.False(t, ok)
}

func TestUpdateUser_RefrescaCopiaDeSesion(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("admin@empresa.com", "x")
	require.True(t, ok)
	name := "Carlos Director"
	_, ok = s.UpdateUser("u1", entity.UserPatch{Name: &name})
	require.True(t, ok)
	assert.Equal(t, name, s.Session().CurrentUser.Name)
}

func TestUpdateProduct_StockNoRecalculaStatus(t *testing.T) {
	s := newSeeded(t)
	zero := 0

	updated, ok := s.UpdateProduct("p1", entity.ProductPatch{Stock: &zero})
	require.True(t, ok)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, entity.ProductStatusAvailable, updated.Status)
}

func TestUpdateProduct_RegistraConNombrePosterior(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("maria@empresa.com", "x")
	require.True(t, ok)
	name := "Mouse Logitech MX"
	_, ok = s.UpdateProduct("p2", entity.ProductPatch{Name: &name})
	require.True(t, ok)
	latest := s.Activity("c1", 1)[0]
	assert.Equal(t, entity.ActivityProductUpdated, latest.Type)
	assert.Equal(t, `Se actualizó producto "Mouse Logitech MX"`, latest.Description)
}

func TestDeleteCompany_ConDependientesEsConflicto(t *testing.T) {
	s := newSeeded(t)
	err := s.DeleteCompany("c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, ok := s.FindCompany("c1")
	assert.True(t, ok)

	assert.ErrorIs(t, s.DeleteCompany("c-no"), domain.ErrNotFound)
}

func TestDeleteCompany_SinDependientesBorraSuChat(t *testing.T) {
	s := newSeeded(t)
	c := s.AddCompany(entity.Company{Name: "Empresa D", Country: "Chile", Currency: "CLP", Timezone: "America/Santiago"})
	s.AddChatMessage(entity.ChatMessage{Text: "hola", Sender: entity.SenderUser, CompanyID: c.ID})

	require.NoError(t, s.DeleteCompany(c.ID))
	_, ok := s.FindCompany(c.ID)
	assert.False(t, ok)
	assert.Empty(t, s.ChatMessages(c.ID, ""))
}

func TestUpdateCompany(t *testing.T) {
	s := newSeeded(t)
	tz := "America/Monterrey"
	got, ok := s.UpdateCompany("c1", entity.CompanyPatch{Timezone: &tz})
	require.True(t, ok)
	assert.Equal(t, tz, got.Timezone)
	assert.Equal(t, "Empresa A", got.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de actividad
// ──────────────────────────────────────────────────────────────────────────────

func TestAddActivityLog_AcotadoA50(t *testing.T) {
	for _, n := range []int{1, 49, 50, 51, 120} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := store.New(entity.State{}, store.WithIDGenerator(counterIDs()))
			var last entity.ActivityLog
			for i := 0; i < n; i++ {
				last = s.AddActivityLog(entity.ActivityLog{
					Type: entity.ActivityReportGenerated, Description: fmt.Sprintf("evento %d", i), CompanyID: "c1",
				})
			}
			logs := s.Activity("", 0)
			assert.Len(t, logs, min(n, store.MaxActivityLog))
			assert.Equal(t, last, logs[0])
			assert.Equal(t, fmt.Sprintf("evento %d", n-1), logs[0].Description)
		})
	}
}

func TestSendSMS_SoloRegistra(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("admin@empresa.com", "x")
	require.True(t, ok)

	s.SendSMS("+52 55 1234 5678", "Reporte \"Ventas Mensual\" programado para el lunes")
	latest := s.Activity("c1", 1)[0]
	assert.Equal(t, entity.ActivityUserCreated, latest.Type)
	assert.Equal(t, `SMS enviado a +52 55 1234 5678: "Reporte "Ventas Mensual" progr..."`, latest.Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat
// ──────────────────────────────────────────────────────────────────────────────

func TestClearChatMessages_SoloLaEmpresaIndicada(t *testing.T) {
	s := store.New(entity.State{}, store.WithIDGenerator(counterIDs()))
	s.AddChatMessage(entity.ChatMessage{Text: "uno", Sender: entity.SenderUser, CompanyID: "c1"})
	c2 := s.AddChatMessage(entity.ChatMessage{Text: "dos", Sender: entity.SenderUser, CompanyID: "c2"})
	s.AddChatMessage(entity.ChatMessage{Text: "tres", Sender: entity.SenderBot, CompanyID: "c1"})

	removed := s.ClearChatMessages("c1")

	assert.Equal(t, 2, removed)
	remaining := s.Snapshot().ChatMessages
	require.Len(t, remaining, 1)
	assert.Equal(t, c2, remaining[0])
}

func TestClearConversation(t *testing.T) {
	s := store.New(entity.State{}, store.WithIDGenerator(counterIDs()))
	s.AddChatMessage(entity.ChatMessage{Text: "a", CompanyID: "c1"})
	s.AddChatMessage(entity.ChatMessage{Text: "b", CompanyID: "c1", ConversationID: "ventas"})

	assert.Equal(t, 1, s.ClearConversation("c1", "ventas"))
	assert.Len(t, s.ChatMessages("c1", ""), 1)
	assert.Empty(t, s.ChatMessages("c1", "ventas"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reductor y persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestReduce_NoModificaElEstadoDeEntrada(t *testing.T) {
	orig := store.Seed(testNow)
	frozen := store.Clone(orig)

	next := store.Reduce(orig, store.DeleteProduct{ID: "p1"})
	next = store.Reduce(next, store.AddChatMessage{Message: entity.ChatMessage{ID: "m9", CompanyID: "c1"}})

	assert.Equal(t, frozen, orig)
	assert.Len(t, next.Products, len(orig.Products)-1)
	assert.Len(t, next.ChatMessages, len(orig.ChatMessages)+1)
}

func TestPersistencia_TrasCadaMutacion(t *testing.T) {
	repo := &memRepo{}
	s := newSeeded(t, store.WithRepository(repo))

	s.AddCompany(entity.Company{Name: "Nueva"})
	s.DeleteProduct("p10")
	_, _ = s.Login("admin@empresa.com", "x")

	require.Len(t, repo.saved, 3)
	assert.Equal(t, s.Snapshot(), repo.saved[2])
}

func TestLoad_RehidrataOSiembra(t *testing.T) {
	ctx := context.Background()

	empty := &memRepo{}
	s := newSeeded(t, store.WithRepository(empty))
	require.NoError(t, s.Load(ctx))
	require.Len(t, empty.saved, 1, "sin instantánea se guarda la semilla")

	persisted := store.Seed(testNow)
	persisted.Products = persisted.Products[:2]
	full := &memRepo{state: &persisted}
	s = newSeeded(t, store.WithRepository(full))
	require.NoError(t, s.Load(ctx))
	assert.Len(t, s.Products(""), 2)
}

func TestSnapshot_IdaYVueltaJSON(t *testing.T) {
	s := newSeeded(t)
	_, ok := s.Login("admin@empresa.com", "x")
	require.True(t, ok)
	s.AddChatMessage(entity.ChatMessage{Text: "hola", Sender: entity.SenderUser, CompanyID: "c1", ConversationID: "soporte"})
	original := s.Snapshot()

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	var restored entity.State
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, original.Session, restored.Session)
	assert.Equal(t, original.Users, restored.Users)
	assert.Equal(t, original.Companies, restored.Companies)
	assert.Equal(t, original.Reports, restored.Reports)
	assert.Equal(t, original.ActivityLog, restored.ActivityLog)
	assert.Equal(t, original.ChatMessages, restored.ChatMessages)
	require.Len(t, restored.Products, len(original.Products))
	for i := range original.Products {
		want, got := original.Products[i], restored.Products[i]
		assert.True(t, want.Price.Equal(got.Price), "precio de %s", want.ID)
		want.Price = got.Price
		assert.Equal(t, want, got)
	}
	again, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))
}

func ptr[T any](v T) *T { return &v }
