package mcpserver

// EventFormatContract describes the canonical event JSON shape that LLM
// consumers must follow when creating events.
const EventFormatContract = `# Dallyeok Event Format Contract

Every event sent to the create_event tool MUST follow this JSON structure.

## Structure

` + "```" + `json
{
  "title": "팀 회의",                 // REQUIRED – free text
  "date": "2024-10-15",              // REQUIRED – YYYY-MM-DD
  "startTime": "09:00",              // REQUIRED – HH:MM, 24-hour
  "endTime": "10:00",                // REQUIRED – strictly after startTime
  "description": "주간 점검",         // OPTIONAL
  "location": "회의실 B",             // OPTIONAL
  "category": "업무",                 // OPTIONAL
  "repeat": {                        // OPTIONAL – defaults to none
    "type": "weekly",                // one of none, daily, weekly, monthly, yearly
    "interval": 1,                   // positive integer; ignored when type is none
    "endDate": "2024-12-31"          // OPTIONAL – bounds recurrence inclusively
  },
  "notificationTime": 10             // lead time in minutes before startTime; 0 disables it
}
` + "```" + `

## Rules

1. **Do not set an id.** The store assigns ids on creation and they never change.
2. **startTime must be strictly before endTime** on the same date.
3. **Recurring events** (type other than none) need interval >= 1; without an
   endDate, expansion is bounded by the query window, never open-ended.
4. **Overlap:** an event whose [startTime, endTime) interval intersects an
   existing event on the same date is refused unless force is true.
`
