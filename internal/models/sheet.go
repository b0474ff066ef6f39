package models

// Row maps a resolved header name to the raw cell value for one data row.
// Cells arrive as strings from both the XLSX and CSV readers; numeric cells
// keep whatever textual form the export used.
type Row map[string]string

// Cell returns the raw value for a header, or "" when the column is absent.
func (r Row) Cell(header string) string {
	return r[header]
}

// RawSheet is the ordered output of the tabular extractor: resolved headers
// and the data rows located beneath them. It is produced once per import and
// never mutated afterward.
type RawSheet struct {
	Headers []string
	Rows    []Row

	// Synthetic is true when no header row could be located and positional
	// column names were generated instead.
	Synthetic bool

	// Issuer is the profile selected during extraction, or nil when no
	// section marker matched.
	Issuer *IssuerProfile
}

// ColumnRole is the semantic meaning assigned to a spreadsheet column.
type ColumnRole string

const (
	RoleDate       ColumnRole = "date"
	RoleTime       ColumnRole = "time"
	RoleAmount     ColumnRole = "amount"
	RoleWithdrawal ColumnRole = "withdrawal"
	RoleDeposit    ColumnRole = "deposit"
	RoleMerchant   ColumnRole = "merchant"
	RoleMemo       ColumnRole = "memo"
	RoleAccount    ColumnRole = "account"
	RoleType       ColumnRole = "type"
	RoleIgnore     ColumnRole = "ignore"
)

// ColumnAssignment pairs one source column with its assigned role.
type ColumnAssignment struct {
	SourceColumn string
	Role         ColumnRole
}

// RoleMapping is the classifier's output: at most one column per role,
// except that withdrawal/deposit are mutually exclusive alternatives to the
// generic amount role. Unlisted columns are implicitly ignored.
type RoleMapping struct {
	Assignments []ColumnAssignment
}

// Column returns the source column assigned to role, or "" when unassigned.
func (m RoleMapping) Column(role ColumnRole) string {
	for _, a := range m.Assignments {
		if a.Role == role {
			return a.SourceColumn
		}
	}
	return ""
}

// Has reports whether any column was assigned the given role.
func (m RoleMapping) Has(role ColumnRole) bool {
	return m.Column(role) != ""
}

// Assign adds an assignment unless the role is already taken.
func (m *RoleMapping) Assign(column string, role ColumnRole) {
	if m.Has(role) {
		return
	}
	m.Assignments = append(m.Assignments, ColumnAssignment{SourceColumn: column, Role: role})
}

// HasAmountSource reports whether an amount can be read from the mapping,
// either via the generic amount role or the withdrawal/deposit pair.
func (m RoleMapping) HasAmountSource() bool {
	return m.Has(RoleAmount) || m.Has(RoleWithdrawal) || m.Has(RoleDeposit)
}
