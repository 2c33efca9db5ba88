package models

import "time"

// Order statuses. Values outside this set pass through the lifecycle
// update unchanged; only the first three trigger approval bookkeeping.
const (
	StatusAwaitingApproval = "Awaiting Approval"
	StatusProcessing       = "Processing"
	StatusCancelled        = "Cancelled"
	StatusShipped          = "Shipped"
	StatusReturned         = "Returned"
)

// Demo purposes. Opportunity metadata is only required for Prospect/Meeting.
const (
	PurposeProspect = "Prospect/Meeting"
	PurposeEvent    = "Event"
	PurposeOther    = "Other"
)

// UsecaseDelimiter joins multi-value use-case tags into one stored string.
const UsecaseDelimiter = ","

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"column:order_ref;type:varchar(32);uniqueIndex;not null" json:"order_ref"`

	// Requester
	SalesExecutive string `gorm:"column:sales_executive;size:100;not null" json:"sales_executive"`
	SalesEmail     string `gorm:"column:sales_email;size:150;not null;index" json:"sales_email"`
	Reseller       string `gorm:"column:reseller;size:150" json:"reseller"`

	// Opportunity metadata, present only when purpose is Prospect/Meeting
	DemoPurpose     string  `gorm:"column:demo_purpose;size:50;not null" json:"demo_purpose"`
	Company         *string `gorm:"column:company;size:150" json:"company,omitempty"`
	OpportunitySize *string `gorm:"column:opportunity_size;size:100" json:"opportunity_size,omitempty"`
	UsecaseTags     *string `gorm:"column:usecase_tags;size:255" json:"usecase_tags,omitempty"`
	MetaDealReg     bool    `gorm:"column:meta_deal_reg;default:false" json:"meta_deal_reg"`
	MetaDealRegID   *string `gorm:"column:meta_deal_reg_id;size:100" json:"meta_deal_reg_id,omitempty"`

	// Shipping
	ShippingContact string     `gorm:"column:shipping_contact;size:150" json:"shipping_contact"`
	ShippingAddress string     `gorm:"column:shipping_address;type:text" json:"shipping_address"`
	ReturnDate      *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	Notes           *string    `gorm:"column:notes;type:text" json:"notes,omitempty"`

	// Lifecycle
	OrderStatus        string     `gorm:"column:order_status;size:50;not null;default:'Awaiting Approval';index" json:"order_status"`
	TrackingNumber     *string    `gorm:"column:tracking_number;size:100" json:"tracking_number,omitempty"`
	TrackingNumberLink *string    `gorm:"column:tracking_number_link;size:255" json:"tracking_number_link,omitempty"`
	ReturnTracking     *string    `gorm:"column:return_tracking;size:100" json:"return_tracking,omitempty"`
	ReturnTrackingLink *string    `gorm:"column:return_tracking_link;size:255" json:"return_tracking_link,omitempty"`
	ReturnLabel        *string    `gorm:"column:return_label;size:255" json:"return_label,omitempty"`
	ApprovedBy         *string    `gorm:"column:approved_by;size:150" json:"approved_by,omitempty"`
	ApprovedDate       *time.Time `gorm:"column:approved_date" json:"approved_date,omitempty"`
	RejectedBy         *string    `gorm:"column:rejected_by;size:150" json:"rejected_by,omitempty"`
	RejectedDate       *time.Time `gorm:"column:rejected_date" json:"rejected_date,omitempty"`

	// Reminder flags guarantee at-most-once delivery per milestone.
	ReminderSent bool `gorm:"column:reminder_sent;default:false" json:"reminder_sent"`
	Overdue10Sent bool `gorm:"column:overdue10_sent;default:false" json:"overdue10_sent"`

	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedDate time.Time `gorm:"column:updated_date" json:"updated_date"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ApprovalUpdates returns the approval/rejection column changes a status
// transition implies. Only program managers carry approval authority; for
// every other role the bookkeeping columns stay untouched. Approved and
// rejected are mutually exclusive: entering one clears the other, and
// resetting to Awaiting Approval clears both.
func ApprovalUpdates(role, status, actor string, now time.Time) map[string]interface{} {
	if role != RoleProgramManager {
		return map[string]interface{}{}
	}
	switch status {
	case StatusProcessing:
		return map[string]interface{}{
			"approved_by":   actor,
			"approved_date": now,
			"rejected_by":   nil,
			"rejected_date": nil,
		}
	case StatusCancelled:
		return map[string]interface{}{
			"approved_by":   nil,
			"approved_date": nil,
			"rejected_by":   actor,
			"rejected_date": now,
		}
	case StatusAwaitingApproval:
		return map[string]interface{}{
			"approved_by":   nil,
			"approved_date": nil,
			"rejected_by":   nil,
			"rejected_date": nil,
		}
	default:
		return map[string]interface{}{}
	}
}
