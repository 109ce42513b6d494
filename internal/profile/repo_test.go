package profile

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
)

func TestMoodOf(t *testing.T) {
	// Setup mock database
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	// Configure GORM with mock
	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	// Assign mock DB to database.DB for testing
	originalDB := database.DB
	database.DB = db
	defer func() { database.DB = originalDB }()

	tests := []struct {
		name     string
		userID   string
		mockRows *sqlmock.Rows
		expected mood.Mood
	}{
		{
			name:     "Profile with a mood",
			userID:   "happy-user",
			mockRows: sqlmock.NewRows([]string{"mood"}).AddRow("happy"),
			expected: mood.Happy,
		},
		{
			name:     "Profile with empty mood",
			userID:   "blank-user",
			mockRows: sqlmock.NewRows([]string{"mood"}).AddRow(""),
			expected: mood.Neutral,
		},
		{
			name:     "No profile",
			userID:   "ghost",
			mockRows: sqlmock.NewRows([]string{"mood"}),
			expected: mood.Neutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`SELECT (.+) FROM "profiles"`).WillReturnRows(tt.mockRows)

			result, err := MoodOf(tt.userID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
