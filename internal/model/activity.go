package model

import "time"

type ActivityAction string

const (
	ActionLogin               ActivityAction = "login"
	ActionLogout              ActivityAction = "logout"
	ActionCreateProduct       ActivityAction = "create_product"
	ActionUpdateProduct       ActivityAction = "update_product"
	ActionDeleteProduct       ActivityAction = "delete_product"
	ActionCreateSale          ActivityAction = "create_sale"
	ActionUpdateSale          ActivityAction = "update_sale"
	ActionCancelSale          ActivityAction = "cancel_sale"
	ActionRefundSale          ActivityAction = "refund_sale"
	ActionCreateUser          ActivityAction = "create_user"
	ActionUpdateUser          ActivityAction = "update_user"
	ActionDeleteUser          ActivityAction = "delete_user"
	ActionInventoryAdjustment ActivityAction = "inventory_adjustment"
	ActionGenerateReport      ActivityAction = "generate_report"
	ActionBackupData          ActivityAction = "backup_data"
	ActionSettingChange       ActivityAction = "system_setting_change"
	ActionCreateCategory      ActivityAction = "create_category"
	ActionUpdateCategory      ActivityAction = "update_category"
	ActionDeleteCategory      ActivityAction = "delete_category"
)

type ActivityModule string

const (
	ModuleAuth      ActivityModule = "auth"
	ModuleProducts  ActivityModule = "products"
	ModuleSales     ActivityModule = "sales"
	ModuleInventory ActivityModule = "inventory"
	ModuleUsers     ActivityModule = "users"
	ModuleReports   ActivityModule = "reports"
	ModuleSettings  ActivityModule = "settings"
	ModuleSystem    ActivityModule = "system"
)

type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
	ActivityWarning ActivityStatus = "warning"
)

type ActivityLog struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user"`
	Action      ActivityAction `db:"action" json:"action"`
	Module      ActivityModule `db:"module" json:"module"`
	Description string         `db:"description" json:"description"`
	EntityType  *string        `db:"entity_type" json:"entityType,omitempty"`
	EntityID    *string        `db:"entity_id" json:"entityId,omitempty"`
	IPAddress   string         `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent   string         `db:"user_agent" json:"userAgent,omitempty"`
	Metadata    JSONMap        `db:"metadata" json:"metadata,omitempty"`
	Status      ActivityStatus `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`

	UserName *string `db:"user_name" json:"userName,omitempty"`
}
