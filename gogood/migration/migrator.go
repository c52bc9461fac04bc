package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogood-app/gogood-backend/gogood/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Migrator copies the legacy Mongoose collections into Postgres. Legacy
// ObjectIDs are replaced with serial IDs; cross-collection references are
// remapped through in-memory id tables built as the owning collection is
// imported. One-shot tool, run against a quiesced legacy deployment.
type Migrator struct {
	pgDB    *bun.DB
	mongoDB *mongo.Database
	stats   MigrationStats

	userIDs map[string]int64
	cityIDs map[string]int64
	orgIDs  map[string]int64
}

func NewMigrator(pgDB *bun.DB, mongoDB *mongo.Database) *Migrator {
	return &Migrator{
		pgDB:    pgDB,
		mongoDB: mongoDB,
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
		userIDs: make(map[string]int64),
		cityIDs: make(map[string]int64),
		orgIDs:  make(map[string]int64),
	}
}

// MigrateAll imports every collection in dependency order.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", m.migrateUsers},
		{"cityorganizations", m.migratePolicies},
		{"volunteerings", m.migrateVolunteerings},
		{"monthlystats", m.migrateMonthlyStats},
		{"redeemcodes", m.migrateRedeemCodes},
	}

	for _, step := range steps {
		start := time.Now()
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("migration of %s failed: %w", step.name, err)
		}
		st := m.stats.Tables[step.name]
		slog.Info("Collection migrated",
			slog.String("type", "db"),
			slog.String("collection", step.name),
			slog.Int("read", st.Read),
			slog.Int("inserted", st.Inserted),
			slog.Int("skipped", st.Skipped),
			slog.Duration("took", time.Since(start)))
	}

	slog.Info("Legacy migration completed",
		slog.String("type", "db"),
		slog.Duration("total", time.Since(m.stats.StartTime)))
	return nil
}

func (m *Migrator) table(name string) *TableStats {
	st, ok := m.stats.Tables[name]
	if !ok {
		st = &TableStats{}
		m.stats.Tables[name] = st
	}
	return st
}

// cityID maps a legacy city ObjectID to a stable serial id, assigning on
// first sight.
func (m *Migrator) cityID(oid string) int64 {
	if id, ok := m.cityIDs[oid]; ok {
		return id
	}
	id := int64(len(m.cityIDs) + 1)
	m.cityIDs[oid] = id
	return id
}

func (m *Migrator) orgID(oid string) int64 {
	if id, ok := m.orgIDs[oid]; ok {
		return id
	}
	id := int64(len(m.orgIDs) + 1)
	m.orgIDs[oid] = id
	return id
}

func (m *Migrator) migrateUsers(ctx context.Context) error {
	st := m.table("users")

	cursor, err := m.mongoDB.Collection("users").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var legacy legacyUser
		if err := cursor.Decode(&legacy); err != nil {
			st.Skipped++
			slog.Warn("Skipping undecodable user document",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			continue
		}
		st.Read++

		user := &models.User{
			Username:         legacy.Username,
			FirstName:        legacy.FirstName,
			LastName:         legacy.LastName,
			CityID:           m.cityID(legacy.City.Hex()),
			GoGs:             legacy.GoGs,
			Level:            legacy.Level,
			Exp:              legacy.Exp,
			BadPoints:        legacy.BadPoints,
			BlockedUntil:     legacy.BlockedUntil,
			ShowLevelUpModal: legacy.ShowLevelUpModal,
			CreatedAt:        legacy.CreatedAt,
			UpdatedAt:        time.Now(),
		}
		if user.Level < 1 {
			user.Level = 1
		}

		// Insert one by one so the generated id can be tied back to the
		// legacy ObjectID for reference remapping.
		if _, err := m.pgDB.NewInsert().Model(user).Returning("id").Exec(ctx); err != nil {
			st.Skipped++
			slog.Warn("Failed to insert user",
				slog.String("type", "db"),
				slog.String("username", legacy.Username),
				slog.String("error", err.Error()))
			continue
		}
		st.Inserted++
		m.userIDs[legacy.ID.Hex()] = user.ID
	}
	return cursor.Err()
}

func (m *Migrator) migratePolicies(ctx context.Context) error {
	st := m.table("cityorganizations")

	cursor, err := m.mongoDB.Collection("cityorganizations").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var legacy legacyCityOrganization
		if err := cursor.Decode(&legacy); err != nil {
			st.Skipped++
			continue
		}
		st.Read++

		policy := &models.OrgRewardPolicy{
			CityID:                   m.cityID(legacy.City.Hex()),
			OrganizationID:           m.orgID(legacy.Organization.Hex()),
			MaxRewardPerVolunteering: legacy.MaxRewardPerVolunteering,
		}
		if _, err := m.pgDB.NewInsert().Model(policy).Exec(ctx); err != nil {
			st.Skipped++
			continue
		}
		st.Inserted++
	}
	return cursor.Err()
}

func (m *Migrator) migrateVolunteerings(ctx context.Context) error {
	st := m.table("volunteerings")

	cursor, err := m.mongoDB.Collection("volunteerings").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var legacy legacyVolunteering
		if err := cursor.Decode(&legacy); err != nil {
			st.Skipped++
			continue
		}
		st.Read++

		regs := make([]models.Registration, 0, len(legacy.RegisteredVolunteers))
		for _, r := range legacy.RegisteredVolunteers {
			userID, ok := m.userIDs[r.UserID.Hex()]
			if !ok {
				// Registration of a user that no longer exists; drop it.
				continue
			}
			regs = append(regs, models.Registration{
				UserID:   userID,
				Status:   r.Status,
				Attended: r.Attended,
				// Legacy volunteerings that were already closed had their
				// outcomes applied by the old backend.
				OutcomeProcessed: legacy.IsClosed,
			})
		}

		rewardType := legacy.RewardType
		if rewardType == "" {
			rewardType = models.RewardTypePercent
		}

		v := &models.Volunteering{
			Title:                legacy.Title,
			Description:          legacy.Description,
			Date:                 legacy.Date,
			DurationMinutes:      legacy.DurationMinutes,
			Address:              legacy.Address,
			CityID:               m.cityID(legacy.City.Hex()),
			OrganizationID:       m.orgID(legacy.OrganizationID.Hex()),
			CreatedByID:          m.userIDs[legacy.CreatedBy.Hex()],
			Tags:                 legacy.Tags,
			RewardType:           rewardType,
			Reward:               legacy.Reward,
			IsRecurring:          legacy.IsRecurring,
			RecurringDay:         legacy.RecurringDay,
			MaxParticipants:      legacy.MaxParticipants,
			MinLevel:             legacy.MinLevel,
			RegisteredVolunteers: regs,
			NotesForVolunteers:   legacy.NotesForVolunteers,
			Cancelled:            legacy.Cancelled,
			IsClosed:             legacy.IsClosed,
			CreatedAt:            legacy.CreatedAt,
		}
		if _, err := m.pgDB.NewInsert().Model(v).Exec(ctx); err != nil {
			st.Skipped++
			continue
		}
		st.Inserted++
	}
	return cursor.Err()
}

func (m *Migrator) migrateMonthlyStats(ctx context.Context) error {
	st := m.table("monthlystats")

	cursor, err := m.mongoDB.Collection("monthlystats").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var legacy legacyMonthlyStat
		if err := cursor.Decode(&legacy); err != nil {
			st.Skipped++
			continue
		}
		st.Read++

		userID, ok := m.userIDs[legacy.UserID.Hex()]
		if !ok {
			st.Skipped++
			continue
		}

		stat := &models.MonthlyStat{
			UserID: userID,
			// Legacy months are zero-based (January = 0).
			Year:                   legacy.Year,
			Month:                  legacy.Month + 1,
			TotalMinutes:           legacy.TotalMinutes,
			TotalVolunteeringCount: legacy.TotalVolunteeringCount,
			CityID:                 m.cityID(legacy.City.Hex()),
		}
		if _, err := m.pgDB.NewInsert().Model(stat).Exec(ctx); err != nil {
			st.Skipped++
			continue
		}
		st.Inserted++
	}
	return cursor.Err()
}

func (m *Migrator) migrateRedeemCodes(ctx context.Context) error {
	st := m.table("redeemcodes")

	cursor, err := m.mongoDB.Collection("redeemcodes").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var legacy legacyRedeemCode
		if err := cursor.Decode(&legacy); err != nil {
			st.Skipped++
			continue
		}
		st.Read++

		userID, ok := m.userIDs[legacy.User.Hex()]
		if !ok {
			st.Skipped++
			continue
		}

		code := &models.RedeemCode{
			Code:      legacy.Code,
			UserID:    userID,
			Status:    legacy.Status,
			CreatedAt: legacy.CreatedAt,
			UpdatedAt: time.Now(),
		}
		if _, err := m.pgDB.NewInsert().Model(code).Exec(ctx); err != nil {
			st.Skipped++
			continue
		}
		st.Inserted++
	}
	return cursor.Err()
}
