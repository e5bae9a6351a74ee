package seed

import (
	"log"

	"PlayoffPredictor/bracket"
	"PlayoffPredictor/feed"
	"PlayoffPredictor/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "steven",
		Email:    "steven@example.com",
		Password: "password",
	},
	{
		Username: "martin",
		Email:    "luther@example.com",
		Password: "password",
	},
}

var group = models.Group{
	Name:       "Office Pool",
	IsPublic:   true,
	BuyinType:  models.BuyinOptional,
	BuyinPrice: 10,
}

// Load wipes the database and seeds the fallback field plus two demo
// users sharing a pool. Dev convenience only, never called in production.
func Load(db *gorm.DB) {

	err := db.Migrator().DropTable(
		&models.Pick{}, &models.GameResult{}, &models.GroupMember{},
		&models.Group{}, &models.LoginToken{}, &models.PlayoffTeam{}, &models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop table: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.LoginToken{}, &models.PlayoffTeam{},
		&models.Pick{}, &models.GameResult{}, &models.Group{}, &models.GroupMember{},
	)
	if err != nil {
		log.Fatalf("cannot migrate table: %v", err)
	}

	teamModel := models.PlayoffTeam{}
	if err := teamModel.ReplaceField(db, feed.FallbackField()); err != nil {
		log.Fatalf("cannot seed playoff field: %v", err)
	}

	for i := range users {
		users[i].Prepare()
		if _, err := users[i].SaveUser(db); err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}
	}

	group.OwnerID = users[0].ID
	group.Prepare()
	if _, err := group.SaveGroup(db); err != nil {
		log.Fatalf("cannot seed groups table: %v", err)
	}
	for i := range users {
		member := models.GroupMember{
			GroupID:   group.ID,
			UserID:    users[i].ID,
			PaidBuyIn: i == 0,
		}
		if _, err := member.AddMember(db); err != nil {
			log.Fatalf("cannot seed group members: %v", err)
		}
	}

	// Give the first demo user a chalk bracket: higher seed wins every game.
	field := feed.FallbackField()
	sheet := bracket.NewSheet(field)
	for _, slot := range bracket.AllSlots() {
		matchup := bracket.MatchupFor(field, sheet.Picks(), slot)
		winner := matchup[0]
		if winner == nil || (matchup[1] != nil && matchup[1].Seed < winner.Seed) {
			winner = matchup[1]
		}
		if winner == nil {
			continue
		}
		if err := sheet.Set(slot, winner.TeamID); err != nil {
			log.Fatalf("cannot build demo bracket: %v", err)
		}
	}

	pickModel := models.Pick{}
	if err := pickModel.ReplaceUserPicks(db, users[0].ID, sheet.Picks()); err != nil {
		log.Fatalf("cannot seed picks table: %v", err)
	}
}
