package mysql

const upsertActivitySQL = `
INSERT INTO activities
  (id, slug, title, category, destination, location, description,
   rating, review_count, duration, price, image,
   available_from, available_to, is_tour_package)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  slug            = VALUES(slug),
  title           = VALUES(title),
  category        = VALUES(category),
  destination     = VALUES(destination),
  location        = VALUES(location),
  description     = VALUES(description),
  rating          = VALUES(rating),
  review_count    = VALUES(review_count),
  duration        = VALUES(duration),
  price           = VALUES(price),
  image           = VALUES(image),
  available_from  = VALUES(available_from),
  available_to    = VALUES(available_to),
  is_tour_package = VALUES(is_tour_package),
  updated_at      = CURRENT_TIMESTAMP
`

// Options and their dates are replaced wholesale on each upsert; the feed is
// the source of truth and per-row diffing buys nothing at this catalog size.
const deleteOptionsSQL = `DELETE FROM activity_options WHERE activity_id = ?`
const deleteOptionDatesSQL = `DELETE FROM option_dates WHERE activity_id = ?`

const insertOptionsPrefix = "INSERT INTO activity_options\n" +
	"  (activity_id, id, position, title, duration, time_slot, guide_language, price, offer_price, slots_left)\nVALUES "

const insertOptionDatesPrefix = "INSERT INTO option_dates\n  (activity_id, option_id, d)\nVALUES "

const insertMissSQL = `
INSERT INTO seed_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectActivityCols = `
  a.id, a.slug, a.title, a.category, a.destination, a.location, a.description,
  a.rating, a.review_count, a.duration, a.price, a.image,
  a.available_from, a.available_to, a.is_tour_package
`

const getActivitySQL = `SELECT` + selectActivityCols + `FROM activities a WHERE a.slug = ?`

const listActivitiesSQL = `SELECT` + selectActivityCols + `FROM activities a ORDER BY a.id`

const listOptionsForActivitySQL = `
SELECT o.id, o.title, o.duration, o.time_slot, o.guide_language,
       o.price, o.offer_price, o.slots_left
FROM activity_options o
WHERE o.activity_id = ?
ORDER BY o.position
`

const listAllOptionsSQL = `
SELECT o.activity_id, o.id, o.title, o.duration, o.time_slot, o.guide_language,
       o.price, o.offer_price, o.slots_left
FROM activity_options o
ORDER BY o.activity_id, o.position
`

const listDatesForActivitySQL = `
SELECT d.option_id, DATE_FORMAT(d.d, '%Y-%m-%d')
FROM option_dates d
WHERE d.activity_id = ?
ORDER BY d.option_id, d.d
`

const listAllDatesSQL = `
SELECT d.activity_id, d.option_id, DATE_FORMAT(d.d, '%Y-%m-%d')
FROM option_dates d
ORDER BY d.activity_id, d.option_id, d.d
`
