package users

import (
	"highlaunchpad/internal/domain/plans"
	"time"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	ProviderUID  *string `gorm:"column:provider_uid;uniqueIndex:idx_users_provider_uid"`
	Role         string
	IsVerified   bool

	PlanID *uint
	Plan   *plans.Plan

	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	SubscriptionId    *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	StripeCustomerID  *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	StripeSubscriptionStatus *string    `gorm:"column:stripe_subscription_status"`
	CurrentPeriodEnd         *time.Time `gorm:"column:current_period_end"`

	// Scheduled plan change (downgrade takes effect next billing cycle)
	PendingPlanID        *uint      `gorm:"column:pending_plan_id"`
	PendingPlanStartDate *time.Time `gorm:"column:pending_plan_start_date"`
	StripeScheduleID     *string    `gorm:"column:stripe_schedule_id"`

	TrialStartAt *time.Time `gorm:"column:trial_start_at"`
	TrialEndAt   *time.Time `gorm:"column:trial_end_at"`

	// Subdomain for the public render route, e.g. "acme" in
	// https://acme.highlaunchpad.com
	SiteSlug *string `gorm:"column:site_slug;uniqueIndex:idx_users_site_slug"`

	CustomDomain *string `gorm:"column:custom_domain"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
