package domain

import "time"

// MasterServant is an owned servant instance on a master account.
// InstanceID is unique within the account and stable across plans;
// GameID references the servant's catalog definition.
type MasterServant struct {
	InstanceID   int64               `json:"instance_id" db:"instance_id"`
	GameID       int                 `json:"game_id" db:"game_id"`
	NpLevel      int                 `json:"np_level,omitempty"`
	Level        int                 `json:"level,omitempty"`
	FouAtk       int                 `json:"fou_atk,omitempty"`
	FouHp        int                 `json:"fou_hp,omitempty"`
	Bond         *int                `json:"bond,omitempty"`
	SummonDate   *time.Time          `json:"summon_date,omitempty"`
	Enhancements ServantEnhancements `json:"enhancements"`
}

// MasterAccount is a player's game account as recorded by the planner:
// roster, item inventory, currency, unlocked costumes and soundtracks.
type MasterAccount struct {
	ID          string          `json:"account_id" db:"account_id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Name        string          `json:"name" db:"name"`
	FriendID    string          `json:"friend_id,omitempty" db:"friend_id"`
	QP          int64           `json:"qp" db:"qp"`
	Items       map[int]int     `json:"items"`
	Servants    []MasterServant `json:"servants"`
	Costumes    []int           `json:"costumes"`
	Soundtracks []int           `json:"soundtracks"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ServantByInstanceID returns the owned servant with the given instance id,
// or nil when the account does not own it.
func (a *MasterAccount) ServantByInstanceID(instanceID int64) *MasterServant {
	for i := range a.Servants {
		if a.Servants[i].InstanceID == instanceID {
			return &a.Servants[i]
		}
	}
	return nil
}
