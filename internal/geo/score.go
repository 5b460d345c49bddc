package geo

const (
	promotionWeight = 10
	eventWeight     = 10
	followerWeight  = 0.1
	followingBonus  = 50
)

// EngagementScore ranks a business for geofence-notification priority:
// active content counts dominate, follower count is a weak signal, and
// an existing follow relationship gets a flat bonus.
func EngagementScore(activePromotions, activeEvents, followers int64, isFollowing bool) float64 {
	score := float64(activePromotions)*promotionWeight +
		float64(activeEvents)*eventWeight +
		float64(followers)*followerWeight
	if isFollowing {
		score += followingBonus
	}
	return score
}
