package entities

import "time"

var teachings = [...]string{
	"As God always gives love, giving love is more blessed than receiving love.",
	"When we give glory to God, that glory will be ours in the end.",
	"When we look at things beautifully without hatred in our hearts, we can achieve perfect love.",
	"As Abraham received more blessings when he yielded for his nephew Lot, we, too, will receive more blessings when we yield for our brothers and sisters.",
	"Arrogance is feeling disappointed when our expectations are not met.",
	"Although others do not work, let us work faithfully without complaining. When we work with the mindset of an owner, we can work with joy and ease.",
	"Arrogance arises from a heart full of complaint. When we always serve God with gratitude, arrogance and complaint disappear, and humility will dwell in our hearts.",
	"When we compliment our brothers and sisters, compliments will return to us.",
	"As the sea receives all the dirt and purifies it, we should have a broad and beautiful heart to embrace the faults of our brothers and sisters.",
	"Whoever wants to be led by the Lamb should become a lamb smaller than the Lamb.",
	"Sacrifice is needed in the process of becoming a greater vessel.",
	"Even God came to serve, not to be served. When we serve one another without wanting to be served, God will be pleased.",
	"We should endure present sufferings for the Kingdom of Heaven will be ours.",
}

// TeachingCount is the number of daily teachings in rotation.
const TeachingCount = len(teachings)

// TeachingFor returns the teaching of the day for t.
// The rotation is keyed by day of year in t's location.
func TeachingFor(t time.Time) string {
	return teachings[t.YearDay()%TeachingCount]
}
