package importer

import (
	"asteria/internal/domains/quote/pricing"
	"asteria/shared/constant"
	"asteria/shared/timezone"
	"fmt"
	"math/rand"
	"strings"
)

var (
	sampleNames = []string{
		"Nguyễn Văn An",
		"Trần Thị Bích",
		"Lê Minh Châu",
		"Phạm Quốc Dũng",
		"Hoàng Thu Hà",
		"Vũ Đức Huy",
		"Đặng Ngọc Lan",
		"Bùi Thanh Mai",
		"Đỗ Xuân Phúc",
		"Ngô Kim Thoa",
	}

	sampleRoomTypes = []string{
		"Deluxe Ocean View",
		"Garden Bungalow",
		"Family Suite",
		"Beachfront Villa",
		"Superior Twin",
	}

	sampleRequests = []string{
		"Late check-out if possible",
		"High floor, away from elevator",
		"Honeymoon decoration",
		"Airport pickup",
		"",
	}

	sampleServices = []string{
		"Breakfast buffet",
		"Spa package",
		"Sunset cruise",
		"",
	}

	sampleChildren = []string{
		"Ages 4 and 7",
		"One toddler, age 2",
		"",
	}

	samplePrices = []int64{1500000, 1800000, 2200000, 2800000, 3500000}
	sampleFees   = []int64{0, 100000, 250000, 500000}
)

// SampleLine generates a demo guest profile as one import-ready line in
// the canonical column order.
func SampleLine(lang string) string {
	name := sampleNames[rand.Intn(len(sampleNames))]
	email := emailFor(name)
	phone := fmt.Sprintf("09%08d", rand.Intn(100000000))

	checkIn := timezone.Now().AddDate(0, 0, 7+rand.Intn(30))
	nights := 1 + rand.Intn(6)
	checkOut := checkIn.AddDate(0, 0, nights)

	adults := 1 + rand.Intn(3)
	children := rand.Intn(3)

	childrenDetails := ""
	if children > 0 {
		childrenDetails = sampleChildren[rand.Intn(len(sampleChildren))]
	}

	pricePerNight := samplePrices[rand.Intn(len(samplePrices))]
	additionalFees := sampleFees[rand.Intn(len(sampleFees))]
	totalRoomCost := pricePerNight * int64(nights)
	grandTotal := totalRoomCost + additionalFees

	fields := []string{
		pricing.GenerateBookingID(),
		name,
		email,
		phone,
		timezone.Format(checkIn, constant.DisplayDateFormat),
		timezone.Format(checkOut, constant.DisplayDateFormat),
		sampleRoomTypes[rand.Intn(len(sampleRoomTypes))],
		fmt.Sprintf("%d", adults),
		fmt.Sprintf("%d", children),
		childrenDetails,
		sampleRequests[rand.Intn(len(sampleRequests))],
		pricing.FormatAmount(pricePerNight, lang),
		pricing.FormatAmount(totalRoomCost, lang),
		pricing.FormatAmount(additionalFees, lang),
		sampleServices[rand.Intn(len(sampleServices))],
		pricing.FormatAmount(grandTotal, lang),
	}

	return strings.Join(fields, "\t")
}

// emailFor slugs a Vietnamese name into an ascii mailbox.
func emailFor(name string) string {
	replacer := strings.NewReplacer(
		"ă", "a", "â", "a", "á", "a", "à", "a", "ạ", "a", "ả", "a", "ã", "a", "ấ", "a", "ậ", "a", "ắ", "a", "ằ", "a",
		"đ", "d",
		"é", "e", "è", "e", "ê", "e", "ế", "e", "ệ", "e", "ễ", "e",
		"í", "i", "ì", "i", "ị", "i",
		"ó", "o", "ò", "o", "ô", "o", "ố", "o", "ộ", "o", "ỗ", "o", "ơ", "o", "ớ", "o", "ỡ", "o",
		"ú", "u", "ù", "u", "ụ", "u", "ư", "u", "ứ", "u", "ữ", "u",
		"ý", "y", "ỳ", "y", "ỵ", "y",
	)

	slug := replacer.Replace(strings.ToLower(name))
	slug = strings.ReplaceAll(slug, " ", ".")

	return fmt.Sprintf("%s%d@example.com", slug, rand.Intn(100))
}
