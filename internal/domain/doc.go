// Package domain defines the core business entities of the ad marketplace:
// users with surfing/advertising balances, ads with a satoshi budget, and
// surf ledger entries. Entities validate themselves; persistence and
// transport concerns live elsewhere.
package domain
