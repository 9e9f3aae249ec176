package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// Seed devuelve el estado de demostración: tres empresas, cinco usuarios, diez productos,
// cinco reportes, algo de actividad reciente y una conversación de soporte.
func Seed(now time.Time) entity.State {
	all := entity.Permissions{Users: true, Companies: true, Inventory: true, Reports: true, Chat: true}
	operativo := entity.Permissions{Inventory: true, Reports: true, Chat: true}

	ago := func(minutes int) time.Time { return now.Add(-time.Duration(minutes) * time.Minute) }
	product := func(id, name, sku, category string, stock int, price int64, companyID, status string) entity.Product {
		return entity.Product{
			ID: id, Name: name, SKU: sku, Category: category, Stock: stock,
			Price: decimal.NewFromInt(price), CompanyID: companyID, Status: status,
		}
	}

	return entity.State{
		Companies: []entity.Company{
			{ID: "c1", Name: "Empresa A", Country: "México", Currency: "MXN", Timezone: "America/Mexico_City"},
			{ID: "c2", Name: "Empresa B", Country: "España", Currency: "EUR", Timezone: "Europe/Madrid"},
			{ID: "c3", Name: "Empresa C", Country: "Argentina", Currency: "ARS", Timezone: "America/Argentina/Buenos_Aires"},
		},
		Users: []entity.User{
			{ID: "u1", Name: "Carlos Admin", Email: "admin@empresa.com", Role: entity.RoleAdmin, CompanyID: "c1", Status: entity.UserStatusActive, Permissions: all},
			{ID: "u2", Name: "María Operativa", Email: "maria@empresa.com", Role: entity.RoleOperativo, CompanyID: "c1", Status: entity.UserStatusActive, Permissions: operativo},
			{ID: "u3", Name: "Juan Viewer", Email: "juan@empresa.com", Role: entity.RoleViewer, CompanyID: "c2", Status: entity.UserStatusActive, Permissions: entity.Permissions{Reports: true}},
			{ID: "u4", Name: "Ana López", Email: "ana@empresa.com", Role: entity.RoleOperativo, CompanyID: "c2", Status: entity.UserStatusActive, Permissions: operativo},
			{ID: "u5", Name: "Pedro García", Email: "pedro@empresa.com", Role: entity.RoleAdmin, CompanyID: "c3", Status: entity.UserStatusInactive, Permissions: all},
		},
		Products: []entity.Product{
			product("p1", "Laptop Dell XPS", "LT-001", "Electrónica", 15, 25000, "c1", entity.ProductStatusAvailable),
			product("p2", "Mouse Logitech", "MS-002", "Accesorios", 3, 350, "c1", entity.ProductStatusLowStock),
			product("p3", "Teclado Mecánico", "KB-003", "Accesorios", 0, 1200, "c1", entity.ProductStatusSoldOut),
			product("p4", `Monitor 27"`, "MN-004", "Electrónica", 8, 8500, "c1", entity.ProductStatusAvailable),
			product("p5", "Impresora HP", "PR-005", "Oficina", 12, 4500, "c2", entity.ProductStatusAvailable),
			product("p6", "Silla Ergonómica", "CH-006", "Mobiliario", 5, 3200, "c2", entity.ProductStatusLowStock),
			product("p7", "Escritorio Ejecutivo", "DS-007", "Mobiliario", 20, 6800, "c2", entity.ProductStatusAvailable),
			product("p8", "Router Cisco", "RT-008", "Redes", 7, 2100, "c3", entity.ProductStatusAvailable),
			product("p9", "Switch 24 puertos", "SW-009", "Redes", 2, 4200, "c3", entity.ProductStatusLowStock),
			product("p10", "Cable HDMI", "CB-010", "Cables", 45, 180, "c3", entity.ProductStatusAvailable),
		},
		Reports: []entity.Report{
			{ID: "r1", Name: "Ventas Mensual", Type: entity.ReportTypeSales, Description: "Reporte de ventas del mes actual", CompanyID: "c1"},
			{ID: "r2", Name: "Movimientos Inventario", Type: entity.ReportTypeInventory, Description: "Detalle de entradas y salidas de productos", CompanyID: "c1"},
			{ID: "r3", Name: "Usuarios Creados", Type: entity.ReportTypeUsers, Description: "Reporte de usuarios registrados en el sistema", CompanyID: "c1"},
			{ID: "r4", Name: "Stock Bajo", Type: entity.ReportTypeInventory, Description: "Productos con stock menor a 5 unidades", CompanyID: "c2"},
			{ID: "r5", Name: "Ventas Anual", Type: entity.ReportTypeSales, Description: "Consolidado de ventas anuales", CompanyID: "c3"},
		},
		ActivityLog: []entity.ActivityLog{
			{ID: "a1", Type: entity.ActivityLogin, Description: "Carlos Admin inició sesión", CompanyID: "c1", UserID: "u1", Timestamp: ago(5)},
			{ID: "a2", Type: entity.ActivityReportGenerated, Description: `Se generó reporte "Ventas Mensual"`, CompanyID: "c1", UserID: "u1", Timestamp: ago(10)},
			{ID: "a3", Type: entity.ActivityUserCreated, Description: `Se creó usuario "Ana López"`, CompanyID: "c2", UserID: "u1", Timestamp: ago(15)},
			{ID: "a4", Type: entity.ActivityProductUpdated, Description: `Se actualizó stock de "Mouse Logitech"`, CompanyID: "c1", UserID: "u2", Timestamp: ago(20)},
			{ID: "a5", Type: entity.ActivityCompanyChanged, Description: `Se cambió a empresa "Empresa B"`, CompanyID: "c2", UserID: "u3", Timestamp: ago(25)},
		},
		ChatMessages: []entity.ChatMessage{
			{ID: "m1", Text: "Hola, ¿en qué puedo ayudarte?", Sender: entity.SenderBot, CompanyID: "c1", Timestamp: ago(30)},
			{ID: "m2", Text: "Necesito ayuda con el inventario", Sender: entity.SenderUser, CompanyID: "c1", Timestamp: ago(29)},
			{ID: "m3", Text: "Claro, ¿qué necesitas saber sobre el inventario?", Sender: entity.SenderBot, CompanyID: "c1", Timestamp: ago(28)},
		},
	}
}
