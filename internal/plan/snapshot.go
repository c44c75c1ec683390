package plan

import "github.com/alvinquach/fgo-planner-go/internal/domain"

// AccountSnapshot is a lookup-friendly, independently owned view of a master
// account. Building a snapshot copies every container so later mutation of
// the source account cannot alias into a running computation.
type AccountSnapshot struct {
	Servants map[int64]domain.MasterServant
	Items    map[int]int
	QP       int64
	Costumes map[int]struct{}
}

// BuildAccountSnapshot indexes the account's roster by instance ID and
// copies the inventory, QP, and unlocked costume set by value. A nil account
// yields an empty snapshot rather than an error.
func BuildAccountSnapshot(account *domain.MasterAccount) AccountSnapshot {
	snapshot := AccountSnapshot{
		Servants: make(map[int64]domain.MasterServant),
		Items:    make(map[int]int),
		Costumes: make(map[int]struct{}),
	}
	if account == nil {
		return snapshot
	}

	for _, servant := range account.Servants {
		snapshot.Servants[servant.InstanceID] = servant
	}
	for itemID, quantity := range account.Items {
		snapshot.Items[itemID] = quantity
	}
	snapshot.QP = account.QP
	for _, costumeID := range account.Costumes {
		snapshot.Costumes[costumeID] = struct{}{}
	}
	return snapshot
}

// Servant returns the owned servant with the given instance ID.
func (s AccountSnapshot) Servant(instanceID int64) (domain.MasterServant, bool) {
	servant, ok := s.Servants[instanceID]
	return servant, ok
}
