package kernel

// Typed identifiers shared across modules. Keeping them distinct types
// prevents a lead id from being passed where a user id is expected.

type LeadID string

func NewLeadID(s string) LeadID { return LeadID(s) }
func (id LeadID) String() string { return string(id) }
func (id LeadID) IsEmpty() bool { return id == "" }

type TaskID string

func NewTaskID(s string) TaskID { return TaskID(s) }
func (id TaskID) String() string { return string(id) }

type UserID string

func NewUserID(s string) UserID { return UserID(s) }
func (id UserID) String() string { return string(id) }
func (id UserID) IsEmpty() bool { return id == "" }

// AuthContext is the authenticated identity attached to a request by the
// auth middleware.
type AuthContext struct {
	UserID UserID
	Name   string
	Role   string
}
