package domain

// EventApplicationSubmitted is the only event type the worker consumes
const EventApplicationSubmitted = "application.submitted"
