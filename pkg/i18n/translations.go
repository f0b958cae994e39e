package i18n

// translations maps language code → UI key → display string.
//
// Supported languages: en (English), am (Amharic).
var translations = map[Language]map[string]string{

	LangEnglish: {
		// ─── Complaint form ──────────────────────────────────────────────────
		"complaint.form.title":                "Submit a Complaint",
		"complaint.form.title_required":       "Title is required",
		"complaint.form.description_required": "Description is required",
		"complaint.form.description_too_long": "Description must be 500 characters or less",
		"complaint.form.institution_required": "Please select an institution",
		"complaint.form.files_rejected":       "Some files were not attached (unsupported type or larger than 5MB)",
		"complaint.form.submitted":            "Your complaint has been submitted",
		"complaint.form.submit_failed":        "Could not submit your complaint. Please try again.",
		"complaint.form.submit_in_progress":   "A submission is already in progress",

		// ─── Complaint list / detail ─────────────────────────────────────────
		"complaint.list.empty":             "No complaints found",
		"complaint.detail.comments_locked": "Comments are available after staff responds to your complaint",
		"complaint.detail.rating_locked":   "You can rate this complaint once it is resolved and has a staff response",
		"complaint.detail.rating_sent":     "Thank you for your rating",
		"complaint.delete.not_allowed":     "Only pending or draft complaints can be deleted",
		"complaint.delete.confirm":         "Are you sure you want to delete this complaint?",
		"complaint.delete.done":            "Complaint deleted",

		// ─── Statuses ────────────────────────────────────────────────────────
		"status.pending":     "Pending",
		"status.in_progress": "In Progress",
		"status.resolved":    "Resolved",
		"status.closed":      "Closed",
		"status.escalated":   "Escalated",

		// ─── Priorities ──────────────────────────────────────────────────────
		"priority.low":    "Low",
		"priority.medium": "Medium",
		"priority.high":   "High",
		"priority.urgent": "Urgent",

		// ─── Notifications ───────────────────────────────────────────────────
		"notification.all_read":       "All notifications marked as read",
		"notification.status_changed": "Your complaint status has changed",
		"notification.new_response":   "A staff member responded to your complaint",

		// ─── Feedback forms ──────────────────────────────────────────────────
		"feedback.form.required_field": "This field is required",
		"feedback.form.invalid_value":  "This answer is not valid for this field",
		"feedback.form.submitted":      "Thank you for your feedback",
		"feedback.form.submit_failed":  "Could not submit your feedback. Please try again.",

		// ─── Maintenance banner ──────────────────────────────────────────────
		"maintenance.banner": "Scheduled maintenance is coming up. The portal may be briefly unavailable.",
	},

	LangAmharic: {
		// ─── Complaint form ──────────────────────────────────────────────────
		"complaint.form.title":                "ቅሬታ ያስገቡ",
		"complaint.form.title_required":       "ርዕስ ያስፈልጋል",
		"complaint.form.description_required": "መግለጫ ያስፈልጋል",
		"complaint.form.description_too_long": "መግለጫው ከ500 ፊደላት መብለጥ የለበትም",
		"complaint.form.institution_required": "እባክዎ ተቋም ይምረጡ",
		"complaint.form.files_rejected":       "አንዳንድ ፋይሎች አልተያያዙም (ያልተፈቀደ አይነት ወይም ከ5MB በላይ)",
		"complaint.form.submitted":            "ቅሬታዎ ገብቷል",
		"complaint.form.submit_failed":        "ቅሬታዎን ማስገባት አልተቻለም። እባክዎ እንደገና ይሞክሩ።",
		"complaint.form.submit_in_progress":   "ማስገባት በሂደት ላይ ነው",

		// ─── Complaint list / detail ─────────────────────────────────────────
		"complaint.list.empty":             "ምንም ቅሬታ አልተገኘም",
		"complaint.detail.comments_locked": "አስተያየት መስጠት የሚቻለው ሰራተኛ ለቅሬታዎ ምላሽ ከሰጠ በኋላ ነው",
		"complaint.detail.rating_locked":   "ቅሬታው ከተፈታ እና የሰራተኛ ምላሽ ካለ በኋላ ደረጃ መስጠት ይችላሉ",
		"complaint.detail.rating_sent":     "ስለ ደረጃ አሰጣጥዎ እናመሰግናለን",
		"complaint.delete.not_allowed":     "በመጠባበቅ ላይ ያሉ ወይም ረቂቅ ቅሬታዎች ብቻ ሊሰረዙ ይችላሉ",
		"complaint.delete.confirm":         "ይህን ቅሬታ መሰረዝ እርግጠኛ ነዎት?",
		"complaint.delete.done":            "ቅሬታው ተሰርዟል",

		// ─── Statuses ────────────────────────────────────────────────────────
		"status.pending":     "በመጠባበቅ ላይ",
		"status.in_progress": "በሂደት ላይ",
		"status.resolved":    "ተፈትቷል",
		"status.closed":      "ተዘግቷል",
		"status.escalated":   "ከፍ ተደርጓል",

		// ─── Priorities ──────────────────────────────────────────────────────
		"priority.low":    "ዝቅተኛ",
		"priority.medium": "መካከለኛ",
		"priority.high":   "ከፍተኛ",
		"priority.urgent": "አስቸኳይ",

		// ─── Notifications ───────────────────────────────────────────────────
		"notification.all_read":       "ሁሉም ማሳወቂያዎች እንደተነበቡ ተመዝግበዋል",
		"notification.status_changed": "የቅሬታዎ ሁኔታ ተቀይሯል",
		"notification.new_response":   "ሰራተኛ ለቅሬታዎ ምላሽ ሰጥቷል",

		// ─── Feedback forms ──────────────────────────────────────────────────
		"feedback.form.required_field": "ይህ መስክ ያስፈልጋል",
		"feedback.form.invalid_value":  "ይህ መልስ ለዚህ መስክ ትክክል አይደለም",
		"feedback.form.submitted":      "ስለ አስተያየትዎ እናመሰግናለን",
		"feedback.form.submit_failed":  "አስተያየትዎን ማስገባት አልተቻለም። እባክዎ እንደገና ይሞክሩ።",

		// ─── Maintenance banner ──────────────────────────────────────────────
		"maintenance.banner": "የታቀደ ጥገና እየመጣ ነው። ፖርታሉ ለአጭር ጊዜ ላይገኝ ይችላል።",
	},
}
