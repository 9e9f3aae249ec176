package store

import (
	"time"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// Stamp identificador y momento asignados por el Store antes de despachar una acción.
// Mantiene Reduce libre de relojes y generadores.
type Stamp struct {
	ID string
	At time.Time
}

// Actor usuario y empresa activa a quien se atribuye un evento (en HTTP salen del token).
// Las acciones que lo aceptan usan la sesión del store cuando By es nil.
type Actor struct {
	UserID    string
	CompanyID string
}

// Action es una mutación del estado. Reduce interpreta cada tipo concreto.
type Action interface {
	actionName() string
}

// Login abre sesión con el usuario activo cuyo email coincide. Log sella la entrada "login".
type Login struct {
	Email string
	Log   Stamp
}

// Logout cierra la sesión. Con By registra la salida de ese usuario y solo limpia la sesión
// del store si es la suya.
type Logout struct {
	By  *Actor
	Log Stamp
}

// SetCurrentCompany cambia la empresa activa. Con By el cambio se atribuye a ese usuario.
type SetCurrentCompany struct {
	CompanyID string
	By        *Actor
	Log       Stamp
}

// AddUser agrega un usuario ya identificado.
type AddUser struct {
	User entity.User
	By   *Actor
	Log  Stamp
}

// UpdateUser aplica un merge superficial sobre el usuario ID.
type UpdateUser struct {
	ID    string
	Patch entity.UserPatch
}

// DeleteUser elimina el usuario ID.
type DeleteUser struct {
	ID string
}

// AddCompany agrega una empresa ya identificada.
type AddCompany struct {
	Company entity.Company
}

// UpdateCompany aplica un merge superficial sobre la empresa ID.
type UpdateCompany struct {
	ID    string
	Patch entity.CompanyPatch
}

// DeleteCompany elimina la empresa ID junto con sus mensajes de chat.
type DeleteCompany struct {
	ID string
}

// AddProduct agrega un producto ya identificado.
type AddProduct struct {
	Product entity.Product
	By      *Actor
	Log     Stamp
}

// UpdateProduct aplica un merge superficial sobre el producto ID.
type UpdateProduct struct {
	ID    string
	Patch entity.ProductPatch
	By    *Actor
	Log   Stamp
}

// DeleteProduct elimina el producto ID.
type DeleteProduct struct {
	ID string
}

// AddActivityLog antepone una entrada ya sellada al registro.
type AddActivityLog struct {
	Entry entity.ActivityLog
}

// AddChatMessage agrega un mensaje ya sellado al final del chat.
type AddChatMessage struct {
	Message entity.ChatMessage
}

// ClearChatMessages elimina todos los mensajes de una empresa.
type ClearChatMessages struct {
	CompanyID string
}

// ClearConversation elimina los mensajes de una conversación de una empresa.
type ClearConversation struct {
	CompanyID      string
	ConversationID string
}

// SendSMS solo deja constancia en el registro de actividad; no hay entrega real.
type SendSMS struct {
	To      string
	Message string
	By      *Actor
	Log     Stamp
}

func (Login) actionName() string             { return "login" }
func (Logout) actionName() string            { return "logout" }
func (SetCurrentCompany) actionName() string { return "set_current_company" }
func (AddUser) actionName() string           { return "add_user" }
func (UpdateUser) actionName() string        { return "update_user" }
func (DeleteUser) actionName() string        { return "delete_user" }
func (AddCompany) actionName() string        { return "add_company" }
func (UpdateCompany) actionName() string     { return "update_company" }
func (DeleteCompany) actionName() string     { return "delete_company" }
func (AddProduct) actionName() string        { return "add_product" }
func (UpdateProduct) actionName() string     { return "update_product" }
func (DeleteProduct) actionName() string     { return "delete_product" }
func (AddActivityLog) actionName() string    { return "add_activity_log" }
func (AddChatMessage) actionName() string    { return "add_chat_message" }
func (ClearChatMessages) actionName() string { return "clear_chat_messages" }
func (ClearConversation) actionName() string { return "clear_conversation" }
func (SendSMS) actionName() string           { return "send_sms" }
