package domain

// AccountRole names an account the posting rules depend on.
// Roles are resolved to concrete account codes once at startup.
type AccountRole string

const (
	RoleCash               AccountRole = "cash"
	RoleAccountsReceivable AccountRole = "accounts_receivable"
	RoleInventory          AccountRole = "inventory"
	RoleInputTax           AccountRole = "input_tax"
	RoleAccountsPayable    AccountRole = "accounts_payable"
	RoleWithholdingPayable AccountRole = "withholding_payable"
	RoleSalesTaxPayable    AccountRole = "sales_tax_payable"
	RoleSalesRevenue       AccountRole = "sales_revenue"
	RoleCostOfGoodsSold    AccountRole = "cost_of_goods_sold"
	RolePurchases          AccountRole = "purchases"
	RoleFuelExpense        AccountRole = "fuel_expense"
)

// AllAccountRoles lists every role in a stable order.
var AllAccountRoles = []AccountRole{
	RoleCash,
	RoleAccountsReceivable,
	RoleInventory,
	RoleInputTax,
	RoleAccountsPayable,
	RoleWithholdingPayable,
	RoleSalesTaxPayable,
	RoleSalesRevenue,
	RoleCostOfGoodsSold,
	RolePurchases,
	RoleFuelExpense,
}

// DefaultRoleCodes is the chart-of-accounts code each role maps to unless overridden.
var DefaultRoleCodes = map[AccountRole]string{
	RoleCash:               "1000",
	RoleAccountsReceivable: "1100",
	RoleInventory:          "1200",
	RoleInputTax:           "1300",
	RoleAccountsPayable:    "2000",
	RoleWithholdingPayable: "2100",
	RoleSalesTaxPayable:    "2200",
	RoleSalesRevenue:       "4000",
	RoleCostOfGoodsSold:    "5000",
	RolePurchases:          "5100",
	RoleFuelExpense:        "5200",
}
