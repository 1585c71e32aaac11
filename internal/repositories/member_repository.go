package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kvinchris/GymManagement/internal/models"
)

// MemberRepository owns the members collection. It also reads the
// packages collection: member creation and renewal resolve the
// referenced package to denormalize its name and derive the expiry
// date from its duration.
type MemberRepository struct {
	Members  *mongo.Collection
	Packages *mongo.Collection
}

func NewMemberRepository(members, packages *mongo.Collection) *MemberRepository {
	return &MemberRepository{Members: members, Packages: packages}
}

// NewMemberCode generates a human-readable display code, e.g. GM-3F2A91.
// Uniqueness is not enforced at the storage level.
func NewMemberCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "GM-" + suffix
}

func (r *MemberRepository) List(ctx context.Context) ([]models.Member, error) {
	cursor, err := r.Members.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := r.Members.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.MemberEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &member, nil
}

// GetByCode looks a member up by its display code. Codes are expected
// to be unique; if more than one document matches, the first in
// storage order is returned.
func (r *MemberRepository) GetByCode(ctx context.Context, code string) (*models.Member, error) {
	var member models.Member
	err := r.Members.FindOne(ctx, bson.M{"member_code": code}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFoundErr(models.MemberEntity)
	}
	if err != nil {
		return nil, fmt.Errorf("get member by code: %w", err)
	}
	return &member, nil
}

// Create enrolls a member. The referenced package must exist; its name
// is denormalized onto the member and the expiry date is computed as
// startDate + package duration.
func (r *MemberRepository) Create(ctx context.Context, member models.Member) (primitive.ObjectID, error) {
	if member.MemberCode == "" {
		member.MemberCode = NewMemberCode()
	}

	var pkg models.Package
	err := r.Packages.FindOne(ctx, bson.M{"_id": member.PackageID}).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, notFoundErr(models.PackageEntity)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("resolve package: %w", err)
	}

	member.PackageName = pkg.Name
	member.StartDate = models.StartOfDay(member.StartDate)
	member.ExpiryDate = models.ExpiryDate(member.StartDate, pkg.Duration)

	if err := member.Validate(); err != nil {
		return primitive.NilObjectID, validationErr(err)
	}

	member.ID = primitive.NewObjectID()
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()

	if _, err := r.Members.InsertOne(ctx, member); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert member: %w", err)
	}
	return member.ID, nil
}

// MemberContactUpdate carries the editable contact fields. Membership
// window fields are excluded: the expiry date only changes through
// Renew.
type MemberContactUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

func (u MemberContactUpdate) set() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	return set
}

func (r *MemberRepository) UpdateContact(ctx context.Context, id primitive.ObjectID, update MemberContactUpdate) error {
	set := update.set()
	if len(set) == 0 {
		return validationErr(errors.New("no update fields provided"))
	}
	if name, ok := set["name"]; ok && name == "" {
		return validationErr(errors.New("member name must not be empty"))
	}
	set["updated_at"] = time.Now()

	res, err := r.Members.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFoundErr(models.MemberEntity)
	}
	return nil
}

// MemberRenewal switches a member to a package starting at StartDate.
type MemberRenewal struct {
	PackageID primitive.ObjectID
	StartDate time.Time
}

// Renew re-resolves the package and recomputes the membership window.
// Returns the new expiry date. The package read and the member write
// are not wrapped in a transaction; single-operator usage is assumed.
func (r *MemberRepository) Renew(ctx context.Context, id primitive.ObjectID, renewal MemberRenewal) (time.Time, error) {
	if renewal.StartDate.IsZero() {
		return time.Time{}, validationErr(errors.New("renewal start date is required"))
	}

	var pkg models.Package
	err := r.Packages.FindOne(ctx, bson.M{"_id": renewal.PackageID}).Decode(&pkg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, notFoundErr(models.PackageEntity)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve package: %w", err)
	}

	start := models.StartOfDay(renewal.StartDate)
	expiry := models.ExpiryDate(start, pkg.Duration)

	res, err := r.Members.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"package_id":   pkg.ID,
		"package_name": pkg.Name,
		"start_date":   start,
		"expiry_date":  expiry,
		"updated_at":   time.Now(),
	}})
	if err != nil {
		return time.Time{}, fmt.Errorf("renew member: %w", err)
	}
	if res.MatchedCount == 0 {
		return time.Time{}, notFoundErr(models.MemberEntity)
	}
	return expiry, nil
}

// Delete removes the member document only. Attendance and payment
// records referencing the member are kept as history. Idempotent.
func (r *MemberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.Members.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// ExpiringWithin returns members whose membership expires in the
// inclusive window [now, now+days], ordered by expiry ascending.
func (r *MemberRepository) ExpiringWithin(ctx context.Context, now time.Time, days int) ([]models.Member, error) {
	upper := now.AddDate(0, 0, days)

	cursor, err := r.Members.Find(ctx,
		bson.M{"expiry_date": bson.M{"$gte": now, "$lte": upper}},
		options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("query expiring members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode expiring members: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.Members.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.Members.CountDocuments(ctx, bson.M{"expiry_date": bson.M{"$gt": now}})
	if err != nil {
		return 0, fmt.Errorf("count active members: %w", err)
	}
	return count, nil
}
